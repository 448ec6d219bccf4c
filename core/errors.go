package core

import "errors"

var (
	ErrInvalidAddress   = errors.New("invalid ethereum address")
	ErrMalformedMessage = errors.New("malformed sign-in message")
	ErrAddressMismatch  = errors.New("message address does not match claimed address")
	ErrInvalidNonce     = errors.New("invalid or expired nonce")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
)

// IsAuthFailure reports whether err is one of the four challenge-verification
// failures that the transport surfaces uniformly, without revealing which
// check rejected the attempt.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrMalformedMessage) ||
		errors.Is(err, ErrAddressMismatch) ||
		errors.Is(err, ErrInvalidNonce) ||
		errors.Is(err, ErrInvalidSignature)
}
