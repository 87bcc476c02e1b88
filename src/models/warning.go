package models

// WarningCode categorizes non-fatal issues found while calculating.
type WarningCode string

const (
	WarnForexFallback     WarningCode = "FOREX_FALLBACK"      // provider failed, rate 1.0 used
	WarnProductSkipped    WarningCode = "PRODUCT_SKIPPED"     // productId did not resolve
	WarnDutyTypeDefaulted WarningCode = "DUTY_TYPE_DEFAULTED" // unknown country status, general used
)

// Warning represents a degraded-mode decision taken during a calculation.
type Warning struct {
	Code      WarningCode `json:"code"`
	Message   string      `json:"message"`
	ProductID ProductID   `json:"productId,omitempty"`
}

// HasWarning reports whether ws contains a warning with the given code.
func HasWarning(ws []Warning, code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
