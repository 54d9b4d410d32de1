package group

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet excludes easily-confused characters (0/O, 1/I).
// Its length of 32 divides 256, so masking a random byte stays uniform.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// NewCode generates a random 6-character group code. Uniqueness is
// enforced by the store's unique constraint, not here.
func NewCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate group code: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf), nil
}
