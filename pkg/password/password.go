package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrTooShort is returned when the plaintext password is below the minimum length.
	ErrTooShort = errors.New("password must be at least 8 characters")
	// ErrMismatch is returned when the password does not match the stored hash.
	ErrMismatch = errors.New("password does not match")
)

// MinLength is the minimum accepted password length.
const MinLength = 8

// Hash hashes a plaintext password using bcrypt with the default cost.
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares a plaintext password with a stored bcrypt hash.
// Returns ErrMismatch when they do not match.
func Verify(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}
