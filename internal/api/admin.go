package api

import (
	"net/http" // HTTP status codes

	"jewelry_store/internal/store" // State stores
	"jewelry_store/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AddUserRequest is the body for an admin-created account
type AddUserRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password"`                    // Optional, defaults to 123456
	Role     string `json:"role"`                        // Optional, defaults to user
}

// UpdateUserRequest holds the fields an admin may change on any account
type UpdateUserRequest struct {
	Username *string `json:"username"` // New username
	Email    *string `json:"email"`    // New email
	Password *string `json:"password"` // New password
	Role     *string `json:"role"`     // New role
}

// DashboardHandler returns the back-office statistics
func DashboardHandler(dashboard *store.DashboardStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := dashboard.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err, "Load dashboard")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"stats":               stats,                             // Aggregated figures
			"total_value_display": utils.FormatVND(stats.TotalValue), // Formatted stock value
			"revenue_display":     utils.FormatVND(stats.Revenue),    // Formatted revenue
		})
	}
}

// ListUsersHandler returns a page of users filtered by search and role
func ListUsersHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := utils.Page(c, store.UserPageSize)
		list, total, err := users.List(c.Request.Context(), store.UserFilter{
			Search:   c.Query("search"),             // Username or email substring
			Role:     c.DefaultQuery("role", "all"), // Role filter
			Page:     page,                          // Requested page
			PageSize: pageSize,                      // Page size
		})
		if err != nil {
			respondError(c, err, "List users")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       list,                              // List of users
			"page":        page,                              // Current page
			"page_size":   pageSize,                          // Page size
			"total":       total,                             // Total number of users
			"total_pages": utils.TotalPages(total, pageSize), // Total pages
		})
	}
}

// AddUserHandler creates an account from the back-office
func AddUserHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and email are required"})
			return
		}
		user, err := users.Add(c.Request.Context(), store.NewUser{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			respondError(c, err, "Add user")
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id": c.GetUint("userID"), // Acting admin
			"user_id":  user.ID,             // New user
			"role":     user.Role,           // Assigned role
		}).Info("User added")
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// UpdateUserHandler edits any account, including its role
func UpdateUserHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Update(c.Request.Context(), id, store.UserPatch{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			respondError(c, err, "Update user")
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "user_id": id}).Info("User updated")
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteUserHandler removes an account and ends its session. Deleting yourself logs you out.
func DeleteUserHandler(users *store.UserStore, sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := users.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, "Delete user")
			return
		}
		// End the session of the deleted account
		if err := sessions.Clear(c.Request.Context(), id); err != nil {
			respondError(c, err, "Clear session")
			return
		}
		self := id == c.GetUint("userID") // Admin removed their own account
		logrus.WithFields(logrus.Fields{"admin_id": c.GetUint("userID"), "user_id": id}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "User deleted", "session_cleared": self})
	}
}
