// src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

// ErrValidationFailed is wrapped by every error of the field validators.
var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	DefaultMaxStringLength = 255
	MaxCountryNameLength   = 100
	MaxCurrencyCodeLength  = 3
	ForexDateLayout        = "2006-01-02"
	ForexDateLatest        = "latest"
)

// --- String Validators ---

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// --- Specific Format Validators ---

// IsCurrencyCode reports whether s is a recognised ISO 4217 code, in any case.
func IsCurrencyCode(s string) bool {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if utf8.RuneCountInString(trimmed) != MaxCurrencyCodeLength {
		return false
	}
	_, err := currency.ParseISO(trimmed)
	return err == nil
}

// IsForexDate reports whether s is a YYYY-MM-DD calendar date or "latest".
func IsForexDate(s string) bool {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, ForexDateLatest) {
		return true
	}
	t, err := time.Parse(ForexDateLayout, trimmed)
	return err == nil && t.Format(ForexDateLayout) == trimmed
}
