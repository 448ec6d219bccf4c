package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	t.Run("lowercases a mixed-case address", func(t *testing.T) {
		got, err := ValidateAddress("0xAbCdEf1234567890aBcDeF1234567890ABCDEF12")
		require.NoError(t, err)
		assert.Equal(t, "0xabcdef1234567890abcdef1234567890abcdef12", got)
	})

	t.Run("keeps an already canonical address unchanged", func(t *testing.T) {
		addr := "0x" + strings.Repeat("a", 40)
		got, err := ValidateAddress(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"0x",
			strings.Repeat("a", 40),                  // missing prefix
			"0x" + strings.Repeat("a", 39),           // too short
			"0x" + strings.Repeat("a", 41),           // too long
			"0x" + strings.Repeat("a", 39) + "g",     // non-hex digit
			"1x" + strings.Repeat("a", 40),           // wrong prefix
			" 0x" + strings.Repeat("a", 40),          // leading space
			"0x" + strings.Repeat("a", 40) + "\n",    // trailing newline
		} {
			_, err := ValidateAddress(input)
			assert.ErrorIs(t, err, ErrInvalidAddress, "input %q", input)
		}
	})
}
