package core

import (
	"fmt"
	"strings"
	"time"
)

// Labels of the two lines extraction depends on. The surrounding boilerplate
// is displayed to the user by the wallet and may change between deployments,
// but must stay stable within one (the signature is over the exact text).
const (
	walletLabel = "Wallet:"
	nonceLabel  = "Nonce:"
)

const messageTemplate = `ChainScore wants you to sign in with your Ethereum account.

Wallet: %s
Nonce: %s
Timestamp: %s

Sign this message to prove you own this wallet. This request will not trigger a blockchain transaction or cost any gas fees.`

// BuildMessage renders the sign-in message for an address and nonce. The
// result is a pure function of its inputs; the timestamp is the nonce
// creation time in RFC 3339 UTC.
func BuildMessage(address, nonce string, issuedAt time.Time) string {
	return fmt.Sprintf(messageTemplate, address, nonce, issuedAt.UTC().Format(time.RFC3339))
}

// ExtractAddress returns the value of the "Wallet:" line, or false if no such
// line exists. Malformed input is a normal outcome, never a fault.
func ExtractAddress(message string) (string, bool) {
	return extractLabeled(message, walletLabel)
}

// ExtractNonce returns the value of the "Nonce:" line, or false if absent.
func ExtractNonce(message string) (string, bool) {
	return extractLabeled(message, nonceLabel)
}

func extractLabeled(message, label string) (string, bool) {
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, label) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, label))
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}
