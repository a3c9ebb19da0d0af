package api

import (
	"net/http" // HTTP status codes

	"jewelry_store/internal/domain" // Importing domain models
	"jewelry_store/internal/store"  // State stores
	"jewelry_store/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AddToCartRequest adds a product to the cart
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"` // Product to add
	Quantity  int  `json:"quantity"`                      // Defaults to 1
}

// cartResponse renders cart items with their total
func cartResponse(items []domain.CartItem) gin.H {
	total := domain.CartTotal(items)
	count := 0
	for _, i := range items {
		count += i.Quantity
	}
	return gin.H{
		"items":         items,                  // Cart lines
		"count":         count,                  // Number of units
		"total":         total,                  // Sum of subtotals
		"total_display": utils.FormatVND(total), // Formatted total
	}
}

// GetCartHandler returns the caller's cart
func GetCartHandler(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := cart.Items(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			respondError(c, err, "Load cart")
			return
		}
		c.JSON(http.StatusOK, cartResponse(items))
	}
}

// AddToCartHandler adds a product, refusing quantities beyond live stock
func AddToCartHandler(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		userID := c.GetUint("userID") // Get userID from context
		item, err := cart.Add(c.Request.Context(), userID, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err, "Add to cart")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,        // Cart owner
			"product_id": req.ProductID, // Product added
			"quantity":   item.Quantity, // Resulting quantity
		}).Info("Cart item added")
		items, err := cart.Items(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Load cart")
			return
		}
		resp := cartResponse(items)
		resp["item"] = item // The line that changed
		c.JSON(http.StatusOK, resp)
	}
}

// DecreaseCartItemHandler lowers a line by one, removing it at one
func DecreaseCartItemHandler(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		userID := c.GetUint("userID") // Get userID from context
		if _, err := cart.Decrease(c.Request.Context(), userID, id); err != nil {
			respondError(c, err, "Decrease quantity")
			return
		}
		items, err := cart.Items(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Load cart")
			return
		}
		c.JSON(http.StatusOK, cartResponse(items))
	}
}

// RemoveCartItemHandler deletes a line from the cart
func RemoveCartItemHandler(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		userID := c.GetUint("userID") // Get userID from context
		if err := cart.Remove(c.Request.Context(), userID, id); err != nil {
			respondError(c, err, "Remove from cart")
			return
		}
		items, err := cart.Items(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Load cart")
			return
		}
		c.JSON(http.StatusOK, cartResponse(items))
	}
}

// ClearCartHandler empties the cart
func ClearCartHandler(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Clear(c.Request.Context(), c.GetUint("userID")); err != nil {
			respondError(c, err, "Clear cart")
			return
		}
		c.JSON(http.StatusOK, cartResponse(nil))
	}
}

// SyncCartHandler refreshes prices from the catalog and drops deleted products
func SyncCartHandler(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := cart.Sync(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			respondError(c, err, "Sync cart")
			return
		}
		c.JSON(http.StatusOK, cartResponse(items))
	}
}
