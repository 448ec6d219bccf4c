package core

import (
	"regexp"
	"strings"
)

// addressPattern matches exactly a 0x-prefixed 20-byte hex address.
// common.IsHexAddress also accepts un-prefixed input, which we reject.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateAddress checks the wallet address syntax and returns its canonical
// lowercase form. Every component downstream keys on the canonical form only;
// case variants of the same address are a single identity.
func ValidateAddress(address string) (string, error) {
	if !addressPattern.MatchString(address) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(address), nil
}
