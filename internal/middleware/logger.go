package middleware

import (
	"time" // Request timing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RequestLogger logs one structured line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start time
		c.Next()            // Run the rest of the chain
		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,           // HTTP method
			"path":    c.Request.URL.Path,         // Request path
			"status":  c.Writer.Status(),          // Response status
			"latency": time.Since(start).String(), // Handling time
			"client":  c.ClientIP(),               // Client address
			"user_id": c.GetUint("userID"),        // Authenticated user, 0 if anonymous
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
