package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidName    = errors.New("invalid display name")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1

	// MaxTotal caps an expense total at one trillion smallest units.
	MaxTotal int64 = 1_000_000_000_000
)

// ValidateName validates a participant or expense display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateTotal validates an expense total.
func ValidateTotal(total int64) error {
	if total < 0 {
		return ErrInvalidInput
	}

	if total > MaxTotal {
		return fmt.Errorf("%w: maximum total is %d", ErrAmountTooLarge, MaxTotal)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
