package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The result is twice as long as size since every byte expands to two hex
// characters. It is used to mint profile tokens.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. A nil slice is left untouched.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
