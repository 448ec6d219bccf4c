package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chainscore/walletauth/core"
)

// AudienceAccess is the fixed token-kind discriminator for session tokens.
const AudienceAccess = "access"

// JWTTokenizer implements the Tokenizer interface with HMAC-signed JWTs.
// The secret is process-wide and read-only after construction; rotation
// means a restart.
type JWTTokenizer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenizer creates a tokenizer for the given algorithm name, secret
// and token TTL. Only HS256 is supported; anything else is a configuration
// error, not a runtime fallback.
func NewJWTTokenizer(algorithm string, secret []byte, ttl time.Duration) (*JWTTokenizer, error) {
	if algorithm != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	return &JWTTokenizer{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (t *JWTTokenizer) TTL() time.Duration {
	return t.ttl
}

// Issue creates a signed session token bound to a canonical address.
func (t *JWTTokenizer) Issue(address string) (string, time.Time, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(t.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   canonical,
			Audience:  jwt.ClaimStrings{AudienceAccess},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify validates the token signature, algorithm, audience and expiry, and
// returns the canonical address claim.
func (t *JWTTokenizer) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithAudience(AudienceAccess), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", core.ErrTokenExpired
		}
		return "", core.ErrInvalidToken
	}
	if !token.Valid {
		return "", core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return "", core.ErrInvalidToken
	}

	address, err := core.ValidateAddress(claims.Subject)
	if err != nil {
		return "", core.ErrInvalidToken
	}
	return address, nil
}
