package tokenizer

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainscore/walletauth/core"
)

var testSecret = []byte("test-secret-at-least-32-bytes-long")

const testAddr = "0xabcdef1234567890abcdef1234567890abcdef12"

func newTestTokenizer(t *testing.T, ttl time.Duration) *JWTTokenizer {
	t.Helper()
	tk, err := NewJWTTokenizer("HS256", testSecret, ttl)
	require.NoError(t, err)
	return tk
}

func TestNewJWTTokenizer(t *testing.T) {
	_, err := NewJWTTokenizer("RS256", testSecret, time.Minute)
	assert.Error(t, err)

	_, err = NewJWTTokenizer("HS256", nil, time.Minute)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tk := newTestTokenizer(t, 30*time.Minute)

	token, expiresAt, err := tk.Issue(testAddr)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, time.Second)

	address, err := tk.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testAddr, address)
}

func TestIssueCanonicalizesAddress(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	token, _, err := tk.Issue("0x" + strings.ToUpper(testAddr[2:]))
	require.NoError(t, err)

	address, err := tk.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testAddr, address)
}

func TestIssueRejectsBadAddress(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	_, _, err := tk.Issue("not-an-address")
	assert.ErrorIs(t, err, core.ErrInvalidAddress)
}

func TestVerifyExpiredToken(t *testing.T) {
	tk := newTestTokenizer(t, -time.Minute)

	token, _, err := tk.Issue(testAddr)
	require.NoError(t, err)

	_, err = tk.Verify(token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	token, _, err := tk.Issue(testAddr)
	require.NoError(t, err)

	// Flip the final signature character.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == flipped {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = tk.Verify(tampered)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)
	other, err := NewJWTTokenizer("HS256", []byte("another-secret-also-32-bytes-long!"), time.Minute)
	require.NoError(t, err)

	token, _, err := other.Issue(testAddr)
	require.NoError(t, err)

	_, err = tk.Verify(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testAddr,
			Audience:  jwt.ClaimStrings{AudienceAccess},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tk.Verify(unsigned)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testAddr,
			Audience:  jwt.ClaimStrings{"refresh"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = tk.Verify(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestVerifyRejectsNonAddressSubject(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Audience:  jwt.ClaimStrings{AudienceAccess},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = tk.Verify(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	tk := newTestTokenizer(t, time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tk.Verify(token)
		assert.ErrorIs(t, err, core.ErrInvalidToken, "token %q", token)
	}
}
