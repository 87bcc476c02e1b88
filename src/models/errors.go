package models

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. The typed errors below unwrap to them.
var (
	ErrValidation      = errors.New("validation failed")
	ErrCountryNotFound = errors.New("country not found")
	ErrNotFound        = errors.New("record not found")
	ErrInternal        = errors.New("calculation failed")
)

// ValidationError is a client-correctable request problem (HTTP 400).
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

// CountryNotFoundError reports which side of the shipment failed to resolve.
type CountryNotFoundError struct {
	Origin      string
	Destination string
	OriginFound bool
	DestFound   bool
}

func (e *CountryNotFoundError) Error() string {
	switch {
	case !e.OriginFound && !e.DestFound:
		return fmt.Sprintf("country not found: origin %q and destination %q", e.Origin, e.Destination)
	case !e.OriginFound:
		return fmt.Sprintf("country not found: origin %q", e.Origin)
	default:
		return fmt.Sprintf("country not found: destination %q", e.Destination)
	}
}

func (e *CountryNotFoundError) Unwrap() error { return ErrCountryNotFound }

// InternalError wraps an unexpected failure during a calculation. Detail and
// Stack are for non-production responses only.
type InternalError struct {
	Message string
	Detail  string
	Stack   string
	Cause   error
}

func NewInternalError(cause error, detail string) *InternalError {
	if detail == "" && cause != nil {
		detail = cause.Error()
	}
	return &InternalError{Message: "Calculation failed", Detail: detail, Cause: cause}
}

func (e *InternalError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Is lets errors.Is match both ErrInternal and the wrapped cause.
func (e *InternalError) Is(target error) bool { return target == ErrInternal }
func (e *InternalError) Unwrap() error       { return e.Cause }
