package main

import (
	"context" // context package is needed for Redis operations

	"jewelry_store/internal/api"    // Custom package for API handlers
	"jewelry_store/internal/config" // Custom package for configuration
	"jewelry_store/internal/db"     // Custom package for database setup
	"jewelry_store/internal/images" // Custom package for image storage
	"jewelry_store/internal/store"  // Custom package for state stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	ctx := context.Background()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if !cfg.IsProd {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Stores
	products := store.NewProductStore(gdb, redisClient, cfg.CatalogCacheTTL)
	users := store.NewUserStore(gdb)

	// Make sure an admin account exists
	if _, err := users.EnsureAdmin(ctx, store.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}

	// Product images go to S3 when a bucket is configured, otherwise to local disk
	var imgs images.Store
	if cfg.S3Bucket != "" {
		imgs, err = images.NewS3Store(ctx, images.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			PathStyle: cfg.S3PathStyle,
		})
	} else {
		imgs, err = images.NewLocalStore(cfg.ImageDir, cfg.ImageURLPrefix)
	}
	if err != nil {
		logrus.Fatalf("failed to set up image storage: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		DB:             gdb,
		Redis:          redisClient,
		Products:       products,
		Cart:           store.NewCartStore(gdb, products),
		Orders:         store.NewOrderStore(gdb),
		Users:          users,
		Sessions:       store.NewSessionStore(redisClient, cfg.JWTSecret),
		Resets:         store.NewResetStore(redisClient, users, cfg.ResetCodeTTL),
		Dashboard:      store.NewDashboardStore(gdb, products, users, cfg.LowStockThreshold),
		Images:         imgs,
		ImageURLPrefix: cfg.ImageURLPrefix,
		IsProd:         cfg.IsProd,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "db": cfg.DBDriver}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
