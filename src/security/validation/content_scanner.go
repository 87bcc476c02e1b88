// src/security/validation/content_scanner.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Common XSS vectors. Contextual output encoding is the primary defense.
	xssPatternsRegex = regexp.MustCompile(
		`(?i)<script|onerror=|onmouseover=|onfocus=|onload=|javascript:|vbscript:|<iframe|<object|<embed|<applet|<style|<link|<img\s+src\s*=\s*['"]?\s*(javascript|data):`,
	)
	// Formula injection characters at the start of a string. Saved
	// calculations end up in spreadsheets.
	formulaInjectionPrefixRegex = regexp.MustCompile(`^[=+\-@\t\r]`)
)

// CheckXSSPatterns detects basic XSS patterns.
func CheckXSSPatterns(s, fieldName string) error {
	if xssPatternsRegex.MatchString(s) {
		return fmt.Errorf("%w: potential XSS pattern detected in field '%s'", ErrValidationFailed, fieldName)
	}
	return nil
}

// CheckFormulaInjection detects if a string starts with characters common in CSV formula injection.
// A leading tab or carriage return is checked on the raw value, the formula
// characters also after surrounding whitespace is trimmed.
func CheckFormulaInjection(s, fieldName string) error {
	if formulaInjectionPrefixRegex.MatchString(s) || formulaInjectionPrefixRegex.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("%w: potential formula injection pattern detected in field '%s'", ErrValidationFailed, fieldName)
	}
	return nil
}

// ScanTextField runs every content check on a raw free-text value.
func ScanTextField(s, fieldName string) error {
	if err := CheckXSSPatterns(s, fieldName); err != nil {
		return err
	}
	return CheckFormulaInjection(s, fieldName)
}
