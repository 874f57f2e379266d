package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validation for formation rows
	_ = v.RegisterValidation("row", validateRow)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	// Check if it's a validator.ValidationErrors
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "row":
			errs[field] = "Must be front or back"
		case "len":
			errs[field] = fmt.Sprintf("Must contain exactly %s entries", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidRows defines the accepted row names in requests
var ValidRows = map[string]bool{
	"front": true,
	"back":  true,
}

// Custom validation function for rows
func validateRow(fl validator.FieldLevel) bool {
	row := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if row == "" {
		return true
	}
	return ValidRows[strings.ToLower(row)]
}
