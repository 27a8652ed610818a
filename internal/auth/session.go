package auth

import (
	"context"
	"time"
)

// whitelistPrefix namespaces session keys in the external cache. No other
// keys are read or written by this subsystem.
const whitelistPrefix = "whitelist:"

// SessionStore is the single source of truth for "is this token still live".
// At most one live entry exists per user at any time: Put overwrites
// unconditionally (single-session-per-user, last write wins).
//
// Implementations must make IsLive fail closed: when the store is
// unreachable, a token is treated as not live rather than letting the
// request through.
type SessionStore interface {
	// Put records token as the user's one live session, expiring after ttl.
	Put(ctx context.Context, userID int64, token string, ttl time.Duration) error

	// Get returns the user's current live token, or ok=false when absent.
	Get(ctx context.Context, userID int64) (token string, ok bool, err error)

	// IsLive reports whether the stored value equals token exactly. A token
	// that verifies cryptographically but does not match the stored value is
	// not live (it was superseded or revoked).
	IsLive(ctx context.Context, userID int64, token string) bool

	// Delete removes the user's session entry. Idempotent; absence is not an
	// error.
	Delete(ctx context.Context, userID int64) error
}
