package service

import (
	"crypto/rand"
	"math/big"
)

// Claim codes gate physical pickup, so they come from a
// cryptographically secure source.
const claimCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ClaimCodeLength is the fixed length of generated claim codes.
const ClaimCodeLength = 6

// GenerateClaimCode returns a fresh 6-character code drawn uniformly
// from [A-Z0-9]. Collisions against other live codes are not checked;
// a code only needs to be unguessable for its own item.
func GenerateClaimCode() (string, error) {
	max := big.NewInt(int64(len(claimCodeAlphabet)))
	code := make([]byte, ClaimCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = claimCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
