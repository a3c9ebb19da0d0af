package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For TTL durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: mysql, postgres or sqlite
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name (file path for sqlite)
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment

	AdminUsername string // Username of the synthesized admin
	AdminEmail    string // Email of the synthesized admin
	AdminPassword string // Initial password of the synthesized admin

	CatalogCacheTTL   time.Duration // Lifetime of the cached catalog
	ResetCodeTTL      time.Duration // Lifetime of a password reset code
	LowStockThreshold int           // Dashboard low stock cut-off

	ImageDir       string // Local directory for uploaded product images
	ImageURLPrefix string // Public URL prefix for local images
	S3Bucket       string // S3 bucket for product images (enables S3 when set)
	S3Region       string // S3 region
	S3Endpoint     string // S3-compatible endpoint
	S3AccessKey    string // S3 access key
	S3SecretKey    string // S3 secret key
	S3PublicURL    string // Public base URL of the bucket
	S3PathStyle    bool   // Use path-style addressing
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),     // Application port
		DBDriver:   getEnv("DB_DRIVER", "mysql"),   // Database driver
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     os.Getenv("DB_HOST"),           // Database host
		DBPort:     os.Getenv("DB_PORT"),           // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@gmail.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		CatalogCacheTTL:   getDuration("CATALOG_CACHE_TTL", 60*time.Second),
		ResetCodeTTL:      getDuration("RESET_CODE_TTL", 15*time.Minute),
		LowStockThreshold: getInt("LOW_STOCK_THRESHOLD", 3),

		ImageDir:       getEnv("IMAGE_DIR", "./uploads"),
		ImageURLPrefix: getEnv("IMAGE_URL_PREFIX", "/images"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		S3PathStyle:    os.Getenv("S3_PATH_STYLE") == "true",
	}
}

// getEnv returns the variable or a fallback when it is unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, falling back on absence or parse error
func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getDuration parses a Go duration string such as "90s"
func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
