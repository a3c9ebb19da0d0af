package main

import (
	"context" // Context for the admin seed

	"jewelry_store/internal/config" // Custom import path (Config)
	"jewelry_store/internal/db"     // Custom import path (Database)
	"jewelry_store/internal/store"  // Custom import path (Stores)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	logrus.Info("Database migrated")

	created, err := store.NewUserStore(gdb).EnsureAdmin(context.Background(), store.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
	logrus.WithField("created", created).Info("Admin account checked")
}
