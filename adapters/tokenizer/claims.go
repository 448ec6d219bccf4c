package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims of an access token. The subject carries the
// canonical wallet address; the audience carries the token-kind
// discriminator.
type SessionClaims struct {
	jwt.RegisteredClaims
}
