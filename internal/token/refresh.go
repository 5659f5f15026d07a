package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewRefreshSecret generates a new raw refresh secret: 64 random bytes,
// hex-encoded. The raw value goes to the client; only its fingerprint is
// ever persisted.
func NewRefreshSecret() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSecret returns the hex-encoded SHA-256 fingerprint of a raw refresh
// secret. The digest is deliberately unsalted: secrets are already
// high-entropy, and the fingerprint must be computable from the secret alone
// so the rotation lookup stays a unique-index hit.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
