package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"jewelry_store/internal/store" // Store errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps store errors to HTTP status codes
func statusFor(err error) int {
	var limit *store.StockLimitError
	switch {
	case errors.As(err, &limit):
		return http.StatusConflict
	case errors.Is(err, store.ErrMissingFields),
		errors.Is(err, store.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidProduct),
		errors.Is(err, store.ErrInvalidRole),
		errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrInvalidResetCode):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrInvalidStatusTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the error response for err; unexpected errors are logged and hidden
func respondError(c *gin.Context, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"user_id": c.GetUint("userID"), // Caller
			"path":    c.FullPath(),        // Route
			"error":   err.Error(),         // Error message
		}).Error(action + " failed")
		c.JSON(status, gin.H{"error": action + " failed"})
		return
	}
	body := gin.H{"error": err.Error()}
	var limit *store.StockLimitError
	if errors.As(err, &limit) {
		body["stock"] = limit.Stock    // Remaining stock
		body["in_cart"] = limit.InCart // Quantity already in the cart
	}
	c.JSON(status, body)
}

// idParam parses the :id path parameter, writing a 400 when it is not a positive integer
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
