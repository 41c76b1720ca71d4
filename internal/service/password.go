package service

import (
	"fmt"

	"github.com/msomdec/ticketboard/internal/domain"
)

const minPasswordLength = 8

// ValidatePassword enforces the account password policy: at least eight
// characters including a lowercase letter, an uppercase letter, a digit and
// a symbol. Anything other than an ASCII letter or digit counts as a symbol.
func ValidatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	switch {
	case !lower:
		return fmt.Errorf("%w: password must contain a lowercase letter", domain.ErrInvalidInput)
	case !upper:
		return fmt.Errorf("%w: password must contain an uppercase letter", domain.ErrInvalidInput)
	case !digit:
		return fmt.Errorf("%w: password must contain a digit", domain.ErrInvalidInput)
	case !symbol:
		return fmt.Errorf("%w: password must contain a symbol", domain.ErrInvalidInput)
	}
	return nil
}
