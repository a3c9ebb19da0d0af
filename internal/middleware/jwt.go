package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"jewelry_store/internal/store" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// JWTAuthMiddleware validates JWT tokens against the user's live session and the account itself
func JWTAuthMiddleware(sessions *store.SessionStore, users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")           // Extract the token string
		claims, err := sessions.Validate(c.Request.Context(), tokenStr) // Parse the token and check the session
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Requested route
				"error": err.Error(),  // Reason for rejection
			}).Debug("Rejected token")
			// If parsing fails or the session is gone, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		user, err := users.Get(c.Request.Context(), claims.UserID) // The account must still exist
		if errors.Is(err, store.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": claims.UserID, "error": err.Error()}).Error("Failed to load user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Set("user", user)            // Store the loaded account for later middleware
		c.Next()                       // Proceed to the next handler
	}
}
