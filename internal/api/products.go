package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"jewelry_store/internal/domain" // Importing domain models
	"jewelry_store/internal/images" // Image storage
	"jewelry_store/internal/store"  // State stores

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal money values
	"github.com/sirupsen/logrus"    // Logging library
)

// maxImageSize bounds an uploaded product image
const maxImageSize = 5 << 20

// ProductRequest is the body for creating a product
type ProductRequest struct {
	Name     string           `json:"name" binding:"required"`        // Display name
	Price    *decimal.Decimal `json:"price" binding:"required"`       // Unit price
	Stock    *int             `json:"stock" binding:"required,gte=0"` // Initial stock
	Category string           `json:"category"`                       // Optional category
	Image    string           `json:"image" binding:"required"`       // Image URL or reference
}

// ProductPatchRequest is the body for a partial product update
type ProductPatchRequest struct {
	Name     *string          `json:"name"`                            // New name
	Price    *decimal.Decimal `json:"price"`                           // New price
	Stock    *int             `json:"stock" binding:"omitempty,gte=0"` // New stock
	Category *string          `json:"category"`                        // New category
	Image    *string          `json:"image"`                           // New image
}

// ListProductsHandler returns the catalog filtered by search, category, sort and featured
func ListProductsHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.ProductFilter{
			Search:   c.Query("search"),                      // Name substring
			Category: c.DefaultQuery("category", "all"),      // Category or all
			Sort:     c.DefaultQuery("sort", store.SortNone), // Price order
			Featured: c.Query("featured") == "true",          // Home page selection
		}
		items, err := products.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "List products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": items, "total": len(items)})
	}
}

// CategoriesHandler returns the distinct catalog categories
func CategoriesHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := products.Categories(c.Request.Context())
		if err != nil {
			respondError(c, err, "List categories")
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

// GetProductHandler returns one product with live stock
func GetProductHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		p, err := products.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Load product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

// CreateProductHandler adds a product to the catalog
func CreateProductHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price, stock and image are required"})
			return
		}
		p := domain.Product{
			Name:     req.Name,     // Display name
			Price:    *req.Price,   // Unit price
			Stock:    *req.Stock,   // Initial stock
			Category: req.Category, // Category, defaulted by the store
			Image:    req.Image,    // Image reference
		}
		if err := products.Create(c.Request.Context(), &p); err != nil {
			respondError(c, err, "Create product")
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id":   c.GetUint("userID"), // Acting admin
			"product_id": p.ID,                // New product
			"stock":      p.Stock,             // Initial stock
		}).Info("Product created")
		c.JSON(http.StatusCreated, gin.H{"product": p})
	}
}

// UpdateProductHandler applies a partial update to a product
func UpdateProductHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req ProductPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		p, err := products.Update(c.Request.Context(), id, store.ProductPatch{
			Name:     req.Name,
			Price:    req.Price,
			Stock:    req.Stock,
			Category: req.Category,
			Image:    req.Image,
		})
		if err != nil {
			respondError(c, err, "Update product")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "product_id": id}).Info("Product updated")
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

// DeleteProductHandler removes a product; carts and orders keep their copies
func DeleteProductHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := products.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, "Delete product")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "product_id": id}).Info("Product deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// ClearProductsHandler removes the whole catalog
func ClearProductsHandler(products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := products.ClearAll(c.Request.Context())
		if err != nil {
			respondError(c, err, "Clear products")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "deleted": n}).Warn("Catalog cleared")
		c.JSON(http.StatusOK, gin.H{"message": "Catalog cleared", "deleted": n})
	}
}

// UploadProductImageHandler stores a multipart "image" file and points the product at it
func UploadProductImageHandler(products *store.ProductStore, imgs images.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		// Make sure the product exists before storing anything
		if _, err := products.Get(c.Request.Context(), id); err != nil {
			respondError(c, err, "Upload image")
			return
		}
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
			return
		}
		if fh.Size > maxImageSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image is too large"})
			return
		}
		contentType := fh.Header.Get("Content-Type")
		key, err := images.ObjectKey(id, contentType)
		if errors.Is(err, images.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG, PNG, WebP or GIF images are accepted"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, err, "Upload image")
			return
		}
		defer f.Close()
		url, err := imgs.Put(c.Request.Context(), key, contentType, f)
		if err != nil {
			respondError(c, err, "Upload image")
			return
		}
		p, err := products.Update(c.Request.Context(), id, store.ProductPatch{Image: &url})
		if err != nil {
			respondError(c, err, "Upload image")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "product_id": id, "key": key}).Info("Product image uploaded")
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}
