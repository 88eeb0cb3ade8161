package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// ResetTokenBytes is the entropy of a password reset token before encoding.
const ResetTokenBytes = 32

// GenerateResetToken returns a URL-safe opaque token from crypto/rand.
func GenerateResetToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
