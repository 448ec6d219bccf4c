package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Nonce is one outstanding authentication challenge. At most one live nonce
// exists per canonical address; storing a new one invalidates the prior.
type Nonce struct {
	Address   string    // canonical lowercase address, the store key
	Value     string    // 32 random bytes, hex encoded
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the nonce is no longer consumable at now.
func (n Nonce) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// Challenge is what generate-nonce hands back to the caller: the nonce value,
// the exact text the wallet must sign, and the challenge deadline.
type Challenge struct {
	Address   string
	Nonce     string
	Message   string
	ExpiresAt time.Time
}

// Session is the result of a completed challenge.
type Session struct {
	Address   string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewNonceValue generates a fresh 256-bit random nonce value.
func NewNonceValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
