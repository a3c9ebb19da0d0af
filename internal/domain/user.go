package domain

import "time"

// User roles
const (
	RoleAdmin = "admin" // Back-office access
	RoleUser  = "user"  // Regular customer
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"` // Unique username
	Email     string    `gorm:"size:128;uniqueIndex;not null" json:"email"`   // Unique email
	Password  string    `gorm:"not null" json:"-"`                            // Hashed password, never serialized
	Role      string    `gorm:"size:16;default:user;not null" json:"role"`    // Role: user or admin
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`             // Creation timestamp
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`             // Last update timestamp
}

// IsAdmin reports whether the user has back-office access
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
