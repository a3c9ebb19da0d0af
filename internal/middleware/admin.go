package middleware

import (
	"net/http" // HTTP status codes

	"jewelry_store/internal/domain" // Importing domain models
	"jewelry_store/internal/store"  // User store

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the role of the account as stored in the database on each request
func AdminOnlyMiddleware(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Get userID from context
		// Check if userID exists in context
		if userID == 0 {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Reuse the account loaded by JWTAuthMiddleware, otherwise fetch it from the database
		var err error
		value, _ := c.Get("user")
		user, ok := value.(*domain.User)
		if !ok {
			user, err = users.Get(c.Request.Context(), userID)
		}
		// If user not found or not an admin, abort with forbidden status
		if err != nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
