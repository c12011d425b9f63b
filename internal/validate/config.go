// Package validate provides configuration validation utilities for dsenv
// components.
//
// Implements validation for probe endpoints and timeouts using the
// go-playground/validator library. Dataset ID values themselves are treated
// as opaque tokens and are deliberately NOT validated here; only the
// configuration that drives probing is checked.
//
// VALIDATION COVERAGE:
//   - Endpoint URLs: metadata server base URLs for probes and the fake server
//   - Timeouts: positive bounded durations for the metadata probe
//   - Required strings: non-empty configuration fields
package validate

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	// Built-in validators (url, required) cover everything needed here
}

// ValidateField validates individual values against specified validation
// rules using the go-playground/validator library. Supports all built-in
// validation tags.
//
// Example: ValidateField("http://169.254.169.254", "required,url")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateRequiredString validates that a string field is not empty.
// Prevents probe construction with missing endpoints or header names.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateEndpointURL validates that an endpoint is a well-formed URL.
// Used when a probe is pointed at a non-default metadata server, e.g. the
// fake endpoint during local testing.
func ValidateEndpointURL(endpoint string) error {
	if err := ValidateField(endpoint, "required,url"); err != nil {
		return fmt.Errorf("invalid endpoint URL %q: %w", endpoint, err)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive.
// A zero timeout would make the HTTP client wait indefinitely, defeating the
// promptness guarantee of the metadata probe.
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
