// src/security/validation/sanitizers.go
package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// Definition of strict sanitization policy
	strictHTMLPolicy *bluemonday.Policy
)

func init() {
	// Initialize strict policy once at startup
	strictHTMLPolicy = bluemonday.StrictPolicy() // Removes all HTML tags
}

// SanitizeText removes all HTML tags and attributes from an input string.
// Entities escaped by the policy are decoded again so names like "A & B"
// survive unchanged. Escaped markup stays escaped.
func SanitizeText(s string) string {
	sanitized := strictHTMLPolicy.Sanitize(s)
	unescaped := html.UnescapeString(sanitized)
	if strings.ContainsAny(unescaped, "<>") {
		return sanitized
	}
	return unescaped
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1 // Drop the rune
	}, s)
}

// CleanField strips markup and unprintable runes and trims the result.
func CleanField(s string) string {
	return strings.TrimSpace(StripUnprintable(SanitizeText(s)))
}
