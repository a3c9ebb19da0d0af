package db

import (
	"jewelry_store/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table managed by the application
func Models() []any {
	return []any{&domain.User{}, &domain.Product{}, &domain.CartItem{}, &domain.Order{}, &domain.OrderItem{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return db.AutoMigrate(Models()...)
}
