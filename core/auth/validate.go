package auth

import (
	"fmt"
	"regexp"

	"github.com/layangkit/layangkit/pkg/password"
)

const minNameLength = 2

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return nil
}

func validateName(name string) error {
	if len(name) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLength)
	}
	return nil
}

// validatePassword enforces the registration password policy: minimum
// length plus at least one uppercase letter and one digit.
func validatePassword(pw string) error {
	if len(pw) < password.MinLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, password.MinLength)
	}
	if !upperRegex.MatchString(pw) {
		return fmt.Errorf("%w: password must contain at least one uppercase letter", ErrValidation)
	}
	if !digitRegex.MatchString(pw) {
		return fmt.Errorf("%w: password must contain at least one number", ErrValidation)
	}
	return nil
}
