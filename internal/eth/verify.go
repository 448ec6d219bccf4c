// Package eth wraps the secp256k1 recovery used to verify personal-sign
// signatures. Verification failures are data, not faults: every malformed
// input yields false.
package eth

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the expected length of an Ethereum signature: 32-byte R,
// 32-byte S and one recovery byte.
const SignatureLength = 65

// RecoverAddress recovers the signer address of an EIP-191 personal-sign
// signature over message. The recovery byte is accepted in both the raw
// {0,1} and the legacy {27,28} encodings wallets emit.
func RecoverAddress(message string, signatureHex string) (common.Address, bool) {
	signature, err := hexutil.Decode(signatureHex)
	if err != nil || len(signature) != SignatureLength {
		return common.Address{}, false
	}

	// crypto.SigToPub wants V in {0,1}.
	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return common.Address{}, false
	}

	hash := accounts.TextHash([]byte(message))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, false
	}

	return crypto.PubkeyToAddress(*pub), true
}

// RecoverAndCompare reports whether signatureHex over message was produced by
// the key behind expected. Both sides are compared canonically, so the
// caller's address casing does not matter.
func RecoverAndCompare(message string, signatureHex string, expected common.Address) bool {
	recovered, ok := RecoverAddress(message, signatureHex)
	if !ok {
		return false
	}
	return recovered == expected
}
