package api

import (
	"net/http" // HTTP status codes

	"jewelry_store/internal/domain" // Importing domain models
	"jewelry_store/internal/store"  // State stores
	"jewelry_store/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// orderPageSize is the default admin order page size
const orderPageSize = 20

// CheckoutRequest is the customer contact form submitted at checkout
type CheckoutRequest struct {
	Name    string `json:"name" binding:"required"`        // Customer name
	Email   string `json:"email" binding:"required,email"` // Contact email
	Address string `json:"address" binding:"required"`     // Delivery address
	Phone   string `json:"phone" binding:"required"`       // Contact phone
	Payment string `json:"payment" binding:"required"`     // Payment method
}

// OrderStatusRequest changes the status of an order
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"` // pending, success or canceled
}

// orderView adds formatted money to an order
func orderView(o domain.Order) gin.H {
	return gin.H{
		"order":         o,                             // The order itself
		"total_display": utils.FormatVND(o.TotalPrice), // Formatted total
	}
}

// CheckoutHandler turns the caller's cart into a pending order
func CheckoutHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, a valid email, address, phone and payment are required"})
			return
		}
		userID := c.GetUint("userID") // Get userID from context
		order, err := orders.Checkout(c.Request.Context(), userID, store.CheckoutInput{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
			Phone:   req.Phone,
			Payment: req.Payment,
		})
		if err != nil {
			respondError(c, err, "Checkout")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,                    // Customer
			"order_id": order.ID,                  // New order
			"code":     order.Code,                // Order code
			"total":    order.TotalPrice.String(), // Order total
		}).Info("Order placed")
		c.JSON(http.StatusCreated, orderView(*order))
	}
}

// MyOrdersHandler lists the caller's orders, newest first
func MyOrdersHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := utils.Page(c, orderPageSize)
		list, total, err := orders.List(c.Request.Context(), store.OrderFilter{
			UserID:   c.GetUint("userID"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			respondError(c, err, "List orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      list,                              // Orders on this page
			"page":        page,                              // Current page
			"page_size":   pageSize,                          // Page size
			"total":       total,                             // Total number of orders
			"total_pages": utils.TotalPages(total, pageSize), // Total pages
		})
	}
}

// ListOrdersHandler lists all orders for admins, optionally filtered by status
func ListOrdersHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		if status == "all" {
			status = ""
		}
		if status != "" && !domain.ValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInvalidStatus.Error()})
			return
		}
		page, pageSize := utils.Page(c, orderPageSize)
		list, total, err := orders.List(c.Request.Context(), store.OrderFilter{
			Status:   status,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			respondError(c, err, "List orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      list,                              // Orders on this page
			"page":        page,                              // Current page
			"page_size":   pageSize,                          // Page size
			"total":       total,                             // Total number of orders
			"total_pages": utils.TotalPages(total, pageSize), // Total pages
		})
	}
}

// GetOrderHandler returns one order with its items
func GetOrderHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		order, err := orders.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Load order")
			return
		}
		c.JSON(http.StatusOK, orderView(*order))
	}
}

// UpdateOrderStatusHandler confirms or cancels a pending order
func UpdateOrderStatusHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req OrderStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending, success or canceled"})
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondError(c, err, "Update order status")
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id": c.GetUint("userID"), // Acting admin
			"order_id": id,                  // Order changed
			"status":   req.Status,          // New status
		}).Info("Order status updated")
		c.JSON(http.StatusOK, orderView(*order))
	}
}

// DeleteOrderHandler removes an order and its items
func DeleteOrderHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := orders.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, "Delete order")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "order_id": id}).Info("Order deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
