package api

import (
	"net/http" // HTTP status codes

	"jewelry_store/internal/images"     // Image storage
	"jewelry_store/internal/middleware" // Custom package for middleware
	"jewelry_store/internal/store"      // State stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps bundles everything the HTTP layer needs
type Deps struct {
	DB             *gorm.DB              // Database handle, used by health checks
	Redis          *redis.Client         // Redis client, used by health checks
	Products       *store.ProductStore   // Catalog
	Cart           *store.CartStore      // Carts
	Orders         *store.OrderStore     // Orders
	Users          *store.UserStore      // Accounts
	Sessions       *store.SessionStore   // Login sessions
	Resets         *store.ResetStore     // Password reset codes
	Dashboard      *store.DashboardStore // Back-office statistics
	Images         images.Store          // Product image storage
	ImageURLPrefix string                // Route serving local images
	IsProd         bool                  // Hide reset codes in production
}

// NewRouter builds the Gin engine with all routes
func NewRouter(d Deps) *gin.Engine {
	if err := registerValidators(); err != nil {
		logrus.Fatalf("failed to register validators: %v", err)
	}

	r := gin.New()                                    // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger()) // Recover from panics and log requests

	// Serve uploaded images when they live on local disk
	if local, ok := d.Images.(*images.LocalStore); ok && d.ImageURLPrefix != "" {
		r.Static(d.ImageURLPrefix, local.Dir())
	}

	r.GET("/healthz", HealthHandler(d.DB, d.Redis)) // Liveness endpoint

	// Auth routes
	auth := r.Group("/auth")
	auth.POST("/register", RegisterHandler(d.Users))                     // Registration endpoint
	auth.POST("/login", LoginHandler(d.Users, d.Sessions))               // Login endpoint
	auth.POST("/reset/request", ResetRequestHandler(d.Resets, d.IsProd)) // Issue a reset code
	auth.POST("/reset/verify", ResetVerifyHandler(d.Resets))             // Check a reset code
	auth.POST("/reset/confirm", ResetConfirmHandler(d.Resets))           // Set the new password

	// Public catalog routes
	r.GET("/products", ListProductsHandler(d.Products))          // Catalog listing
	r.GET("/products/categories", CategoriesHandler(d.Products)) // Distinct categories
	r.GET("/products/:id", GetProductHandler(d.Products))        // Product detail

	// Customer routes (protected by JWT)
	user := r.Group("")
	user.Use(middleware.JWTAuthMiddleware(d.Sessions, d.Users))
	user.POST("/auth/logout", LogoutHandler(d.Sessions))                   // End the session
	user.GET("/me", MeHandler(d.Users))                                    // Own profile
	user.PUT("/me", UpdateMeHandler(d.Users))                              // Edit own profile
	user.GET("/cart", GetCartHandler(d.Cart))                              // View cart
	user.DELETE("/cart", ClearCartHandler(d.Cart))                         // Empty cart
	user.POST("/cart/items", AddToCartHandler(d.Cart))                     // Add to cart
	user.POST("/cart/items/:id/decrease", DecreaseCartItemHandler(d.Cart)) // Lower quantity
	user.DELETE("/cart/items/:id", RemoveCartItemHandler(d.Cart))          // Remove line
	user.POST("/cart/sync", SyncCartHandler(d.Cart))                       // Refresh against catalog
	user.POST("/checkout", CheckoutHandler(d.Orders))                      // Place order
	user.GET("/orders", MyOrdersHandler(d.Orders))                         // Own orders

	// Admin routes (protected, admin only)
	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(d.Sessions, d.Users), middleware.AdminOnlyMiddleware(d.Users))
	admin.GET("/dashboard", DashboardHandler(d.Dashboard))                             // Statistics
	admin.GET("/products", ListProductsHandler(d.Products))                            // Catalog listing
	admin.POST("/products", CreateProductHandler(d.Products))                          // Add product
	admin.DELETE("/products", ClearProductsHandler(d.Products))                        // Remove all products
	admin.PUT("/products/:id", UpdateProductHandler(d.Products))                       // Edit product
	admin.DELETE("/products/:id", DeleteProductHandler(d.Products))                    // Remove product
	admin.POST("/products/:id/image", UploadProductImageHandler(d.Products, d.Images)) // Upload image
	admin.GET("/users", ListUsersHandler(d.Users))                                     // List users
	admin.POST("/users", AddUserHandler(d.Users))                                      // Add user
	admin.PUT("/users/:id", UpdateUserHandler(d.Users))                                // Edit user
	admin.DELETE("/users/:id", DeleteUserHandler(d.Users, d.Sessions))                 // Remove user
	admin.GET("/orders", ListOrdersHandler(d.Orders))                                  // List orders
	admin.GET("/orders/:id", GetOrderHandler(d.Orders))                                // Order detail
	admin.PATCH("/orders/:id/status", UpdateOrderStatusHandler(d.Orders))              // Confirm or cancel
	admin.DELETE("/orders/:id", DeleteOrderHandler(d.Orders))                          // Remove order

	return r
}

// HealthHandler reports whether the database and Redis are reachable
func HealthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"database": "ok", "redis": "ok"}
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "down"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
