package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateToken returns n random bytes hex-encoded, suitable for single-use links.
func GenerateToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
