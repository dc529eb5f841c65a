package encounter

import (
	"errors"
	"unicode/utf8"
)

// Validation errors double as the user-facing messages shown next to
// the rejected field, so they are phrased for display.
var (
	ErrNameLength      = errors.New("Name must be 1-50 characters")
	ErrInitiativeRange = errors.New("Initiative must be 0-30")
	ErrACRange         = errors.New("AC must be 1-30")
)

// ValidateName checks the combatant name length in characters, not bytes.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > 50 {
		return ErrNameLength
	}
	return nil
}

// ValidateInitiative checks a manually entered initiative value.
func ValidateInitiative(v int) error {
	if v < 0 || v > 30 {
		return ErrInitiativeRange
	}
	return nil
}

// ValidateAC checks an armor class value.
func ValidateAC(v int) error {
	if v < 1 || v > 30 {
		return ErrACRange
	}
	return nil
}
