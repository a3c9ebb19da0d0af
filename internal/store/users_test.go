package store

import (
	"context"
	"fmt"
	"testing"

	"jewelry_store/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_Register(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, "lan", "lan@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.Password, "password must be hashed")

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.users.Register(ctx, "lan", "other@example.com", "x")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.users.Register(ctx, "other", "lan@example.com", "x")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("email without at sign", func(t *testing.T) {
		_, err := s.users.Register(ctx, "mai", "mai.example.com", "x")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := s.users.Register(ctx, "", "", "")
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestUserStore_Authenticate(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	_, err := s.users.Register(ctx, "lan", "lan@example.com", "secret1")
	require.NoError(t, err)

	for _, identifier := range []string{"lan", "lan@example.com"} {
		user, err := s.users.Authenticate(ctx, identifier, "secret1")
		require.NoError(t, err, identifier)
		assert.Equal(t, "lan", user.Username)
	}

	_, err = s.users.Authenticate(ctx, "lan", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.users.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserStore_EnsureAdmin(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	seed := AdminSeed{Username: "admin", Email: "admin@gmail.com", Password: "admin123"}

	created, err := s.users.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.users.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := s.users.Authenticate(ctx, "admin@gmail.com", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestUserStore_EnsureAdminAfterEmailChange(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	seed := AdminSeed{Username: "admin", Email: "admin@gmail.com", Password: "admin123"}

	_, err := s.users.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	admin, err := s.users.GetByEmail(ctx, seed.Email)
	require.NoError(t, err)
	email := "boss@shop.vn"
	_, err = s.users.Update(ctx, admin.ID, UserPatch{Email: &email})
	require.NoError(t, err)

	// A restart must not fail on the renamed admin
	created, err := s.users.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)

	total, err := s.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	_, err = s.users.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestUserStore_AddUpdateDelete(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	user, err := s.users.Add(ctx, NewUser{Username: "hoa", Email: "hoa@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	_, err = s.users.Authenticate(ctx, "hoa", DefaultUserPassword)
	require.NoError(t, err, "admin-added users get the default password")

	other, err := s.users.Add(ctx, NewUser{Username: "binh", Email: "binh@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	t.Run("invalid role", func(t *testing.T) {
		_, err := s.users.Add(ctx, NewUser{Username: "x", Email: "x@example.com", Role: "root"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("partial update", func(t *testing.T) {
		email := "hoa.new@example.com"
		updated, err := s.users.Update(ctx, user.ID, UserPatch{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "hoa", updated.Username)
		assert.Equal(t, email, updated.Email)
	})

	t.Run("update conflicts with another user", func(t *testing.T) {
		name := other.Username
		_, err := s.users.Update(ctx, user.ID, UserPatch{Username: &name})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("password change", func(t *testing.T) {
		pw := "newpass"
		_, err := s.users.Update(ctx, user.ID, UserPatch{Password: &pw})
		require.NoError(t, err)
		_, err = s.users.Authenticate(ctx, "hoa", "newpass")
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.users.Delete(ctx, user.ID))
		_, err := s.users.Get(ctx, user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, s.users.Delete(ctx, user.ID), ErrUserNotFound)
	})
}

func TestUserStore_List(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	for i := range 12 {
		_, err := s.users.Add(ctx, NewUser{Username: fmt.Sprintf("user%02d", i), Email: fmt.Sprintf("u%02d@example.com", i), Password: "x"})
		require.NoError(t, err)
	}
	_, err := s.users.Add(ctx, NewUser{Username: "Boss", Email: "boss@shop.vn", Password: "x", Role: domain.RoleAdmin})
	require.NoError(t, err)

	t.Run("first page", func(t *testing.T) {
		users, total, err := s.users.List(ctx, UserFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(13), total)
		assert.Len(t, users, UserPageSize)
	})

	t.Run("second page", func(t *testing.T) {
		users, _, err := s.users.List(ctx, UserFilter{Page: 2})
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("search matches username or email", func(t *testing.T) {
		users, total, err := s.users.List(ctx, UserFilter{Search: "SHOP.VN"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Boss", users[0].Username)

		_, total, err = s.users.List(ctx, UserFilter{Search: "user1"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("role filter", func(t *testing.T) {
		_, total, err := s.users.List(ctx, UserFilter{Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = s.users.List(ctx, UserFilter{Role: "all"})
		require.NoError(t, err)
		assert.Equal(t, int64(13), total)
	})
}
