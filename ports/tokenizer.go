package ports

import "time"

// Tokenizer issues and verifies the session credential bound to a wallet.
type Tokenizer interface {
	// Issue creates a signed session token for a canonical address.
	Issue(address string) (token string, expiresAt time.Time, err error)

	// Verify validates the token and returns the canonical address claim.
	// Any failure (bad signature, wrong algorithm, expired, malformed,
	// missing subject) yields an error and no identity.
	Verify(token string) (address string, err error)
}
