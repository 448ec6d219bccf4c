package ports

import (
	"context"
	"time"
)

// NonceStore holds at most one pending challenge nonce per canonical address.
type NonceStore interface {
	// Store generates a fresh nonce for the address, replacing any pending
	// one with no grace window, and returns the value and absolute expiry.
	Store(ctx context.Context, address string, ttl time.Duration) (value string, expiresAt time.Time, err error)

	// VerifyAndConsume atomically checks and deletes the pending nonce.
	// It returns false if none is pending, the value differs, or the nonce
	// has expired. Of N racing calls with the same value, exactly one
	// observes true.
	VerifyAndConsume(ctx context.Context, address, value string) (bool, error)

	// Delete removes any pending nonce and reports whether one existed.
	Delete(ctx context.Context, address string) (bool, error)
}
