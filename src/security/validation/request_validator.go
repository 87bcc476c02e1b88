// src/security/validation/request_validator.go
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/go-playground/validator/v10"
)

// use a single instance of Validate, it caches struct info
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	requestValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := requestValidate.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return IsCurrencyCode(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering currencycode validation: %v", err))
	}

	if err := requestValidate.RegisterValidation("forexdate", func(fl validator.FieldLevel) bool {
		return IsForexDate(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering forexdate validation: %v", err))
	}
}

// PrepareCalculationRequest sanitizes the free-text fields of req in place,
// upper-cases its currency codes and validates it. Problems are returned as a
// *models.ValidationError. Missing countries or products are left for the
// calculator to report.
func PrepareCalculationRequest(req *models.CalculationRequest) error {
	if req == nil {
		return models.NewValidationError("request body is required")
	}

	s := &req.Shipment
	for _, f := range []struct{ name, value string }{
		{"originCountry", s.OriginCountry},
		{"destinationCountry", s.DestinationCountry},
		{"originCompany", s.OriginCompany},
		{"destCompany", s.DestCompany},
		{"type", s.Type},
		{"mode", s.Mode},
	} {
		if err := ScanTextField(f.value, f.name); err != nil {
			return models.NewValidationError("%s", validationMessage(err))
		}
	}

	s.OriginCountry = CleanField(s.OriginCountry)
	s.DestinationCountry = CleanField(s.DestinationCountry)
	s.OriginCompany = CleanField(s.OriginCompany)
	s.DestCompany = CleanField(s.DestCompany)
	s.Type = CleanField(s.Type)
	s.Mode = CleanField(s.Mode)
	s.OriginCurrency = strings.ToUpper(strings.TrimSpace(s.OriginCurrency))
	s.DestCurrency = strings.ToUpper(strings.TrimSpace(s.DestCurrency))
	s.ForexDate = strings.TrimSpace(s.ForexDate)

	if err := ValidateStringMaxLength(s.OriginCountry, MaxCountryNameLength, "originCountry"); err != nil {
		return models.NewValidationError("%s", validationMessage(err))
	}
	if err := ValidateStringMaxLength(s.DestinationCountry, MaxCountryNameLength, "destinationCountry"); err != nil {
		return models.NewValidationError("%s", validationMessage(err))
	}

	if err := requestValidate.Struct(req); err != nil {
		return toValidationError(err)
	}
	return nil
}

// validationMessage drops the ErrValidationFailed prefix of a field validator error.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrValidationFailed.Error()+": ")
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return models.NewValidationError("invalid request: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return models.NewValidationError("%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	// Namespace looks like "CalculationRequest.products[0].quantity".
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "currencycode":
		return fmt.Sprintf("%s ('%v') is not a recognised ISO 4217 currency code", field, fe.Value())
	case "forexdate":
		return fmt.Sprintf("%s ('%v') is not a valid date (expected YYYY-MM-DD)", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed on '%s'", field, fe.Tag())
	}
}
