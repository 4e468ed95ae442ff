// Package session provides opaque server-side sessions: an ID carried in an
// HttpOnly cookie, resolved through a Store to the authenticated user.
// Session state lives entirely server-side so logout can destroy it totally.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// Store persists the session-ID to user-ID binding with a TTL.
type Store interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
