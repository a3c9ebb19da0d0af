package utils

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// Page reads page and page_size query params with the given default size and a cap of 100
func Page(c *gin.Context, defaultSize int) (page, pageSize int) {
	page = 1               // Default page number
	pageSize = defaultSize // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}

// TotalPages computes the number of pages for total rows
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (int(total) + pageSize - 1) / pageSize
}
