package store

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetStore issues and checks one-time password reset codes
type ResetStore struct {
	rdb   *redis.Client
	users *UserStore
	ttl   time.Duration
}

// NewResetStore creates a reset store; codes expire after ttl
func NewResetStore(rdb *redis.Client, users *UserStore, ttl time.Duration) *ResetStore {
	return &ResetStore{rdb: rdb, users: users, ttl: ttl}
}

// ResetKey is the Redis key holding the pending code for email
func ResetKey(email string) string {
	return "resets:" + strings.TrimSpace(email)
}

// genCode returns a random six digit code
func genCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000)) // 0..899999
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Request issues a code for the account with email, replacing any pending one
func (s *ResetStore) Request(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", missing("email")
	}
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return "", err // Unknown email
	}
	code, err := genCode()
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	// Replaces any pending code and restarts its TTL
	if err := s.rdb.Set(ctx, ResetKey(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store reset code: %w", err)
	}
	return code, nil
}

// Verify checks code against the pending code for email
func (s *ResetStore) Verify(ctx context.Context, email, code string) error {
	stored, err := s.rdb.Get(ctx, ResetKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidResetCode
	}
	if err != nil {
		return fmt.Errorf("load reset code: %w", err)
	}
	if code == "" || stored != strings.TrimSpace(code) {
		return ErrInvalidResetCode
	}
	return nil
}

// Reset sets a new password once code is verified and consumes the code
func (s *ResetStore) Reset(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return missing("password")
	}
	if err := s.Verify(ctx, email, code); err != nil {
		return err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, user.ID, UserPatch{Password: &newPassword}); err != nil {
		return err
	}
	return s.rdb.Del(ctx, ResetKey(email)).Err() // Codes are single use
}
