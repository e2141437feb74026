package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a token resolves to no session
var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session tokens to user IDs with a TTL
type SessionStore interface {
	// Create issues a new token for the user
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	// Resolve returns the user ID for a token, or ErrSessionNotFound
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	// Refresh extends the session's TTL
	Refresh(ctx context.Context, token string) error
	// Destroy removes the session; unknown tokens are not an error
	Destroy(ctx context.Context, token string) error
	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error
}

// generateToken returns a 64-char hex token from 32 random bytes
func generateToken() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// Config holds session store settings
type Config struct {
	TTL time.Duration
}
