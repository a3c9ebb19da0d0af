package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"jewelry_store/internal/domain"
	"jewelry_store/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore tracks the single active login of each user in Redis.
// A token is accepted only while its jti matches the stored session id.
type SessionStore struct {
	rdb    *redis.Client
	secret string
}

// NewSessionStore creates a session store signing tokens with secret
func NewSessionStore(rdb *redis.Client, secret string) *SessionStore {
	return &SessionStore{rdb: rdb, secret: secret}
}

// SessionKey is the Redis key of a user's session
func SessionKey(userID uint) string {
	return "session:user:" + strconv.FormatUint(uint64(userID), 10)
}

// Create starts a new session for user, replacing any previous one, and returns its token
func (s *SessionStore) Create(ctx context.Context, user *domain.User) (string, error) {
	sessionID := uuid.NewString() // Becomes the token jti
	token, err := utils.GenerateJWT(user.ID, user.Role, sessionID, s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	// Overwriting the key invalidates any earlier token
	if err := s.rdb.Set(ctx, SessionKey(user.ID), sessionID, utils.TokenTTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Validate parses a token and checks it belongs to the user's current session
func (s *SessionStore) Validate(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return nil, err
	}
	current, err := s.rdb.Get(ctx, SessionKey(claims.UserID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if current != claims.ID {
		return nil, ErrSessionNotFound // Replaced by a newer login
	}
	return claims, nil
}

// Clear ends the user's session, if any
func (s *SessionStore) Clear(ctx context.Context, userID uint) error {
	return utils.DeleteCache(ctx, s.rdb, SessionKey(userID))
}
