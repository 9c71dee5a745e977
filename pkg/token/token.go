package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

// ErrGeneration is returned when the system's random source fails.
var ErrGeneration = errors.New("failed to generate token")

const secretLength = 32 // 256 bits of entropy

// NewID returns a random UUID v4 string. Suitable for row identifiers that
// do not need to stay confidential.
func NewID() string {
	return uuid.NewString()
}

// NewSecret returns a cryptographically secure random secret encoded as
// lowercase hex. The result is 64 characters long.
func NewSecret() (string, error) {
	b := make([]byte, secretLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return hex.EncodeToString(b), nil
}

// Digest returns the SHA-256 hash of secret as lowercase hex.
func Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
