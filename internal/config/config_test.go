package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "ADMIN_EMAIL", "CATALOG_CACHE_TTL", "LOW_STOCK_THRESHOLD", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "admin@gmail.com", cfg.AdminEmail)
	assert.Equal(t, 60*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CATALOG_CACHE_TTL", "5m")
	t.Setenv("RESET_CODE_TTL", "not-a-duration")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetCodeTTL) // invalid value falls back
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.True(t, cfg.IsProd)
}
