package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jewelry_store/internal/db"
	"jewelry_store/internal/domain"
	"jewelry_store/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*gin.Engine, *store.UserStore, *store.SessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := store.NewUserStore(gdb)
	sessions := store.NewSessionStore(rdb, "secret")

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/me", JWTAuthMiddleware(sessions, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("userID")})
	})
	r.GET("/admin", JWTAuthMiddleware(sessions, users), AdminOnlyMiddleware(users), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, users, sessions
}

func get(r *gin.Engine, path, header string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	r, users, sessions := setup(t)
	ctx := context.Background()
	user, err := users.Register(ctx, "lan", "lan@example.com", "pw")
	require.NoError(t, err)
	token, err := sessions.Create(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Token "+token))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer garbage"))
	assert.Equal(t, http.StatusOK, get(r, "/me", "Bearer "+token))

	require.NoError(t, sessions.Clear(ctx, user.ID))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+token))
}

func TestJWTAuthMiddleware_DeletedAccount(t *testing.T) {
	r, users, sessions := setup(t)
	ctx := context.Background()
	user, err := users.Register(ctx, "lan", "lan@example.com", "pw")
	require.NoError(t, err)
	token, err := sessions.Create(ctx, user)
	require.NoError(t, err)

	// The session key is left in Redis on purpose
	require.NoError(t, users.Delete(ctx, user.ID))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+token))
}

func TestAdminOnlyMiddleware(t *testing.T) {
	r, users, sessions := setup(t)
	ctx := context.Background()
	user, err := users.Register(ctx, "lan", "lan@example.com", "pw")
	require.NoError(t, err)
	token, err := sessions.Create(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+token))

	// Promotion takes effect without a new login
	role := domain.RoleAdmin
	_, err = users.Update(ctx, user.ID, store.UserPatch{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+token))
}
