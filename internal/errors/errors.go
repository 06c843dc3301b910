// Package errors provides a lightweight structured error type (DataError)
// for classifying metadata validation failures per artifact kind.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a DataError for dispatch by the build driver.
type Kind string

const (
	// A required metadata key was absent.
	KindMissingField Kind = "missing_field"
	// A metadata value was present but failed validation.
	KindInvalidValue Kind = "invalid_value"
	// A cross-field invariant was violated (mismatched sequences, bad depth jump).
	KindStructural Kind = "structural"
	// Path traversal or unsanitized content; always fatal to the artifact.
	KindSecurity Kind = "security"
	// Site configuration problems surfaced by the driver.
	KindConfig Kind = "config"
	// Filesystem or store failures surfaced by the driver.
	KindIO Kind = "io"
)

// DataError is a structured error carrying enough context (field name,
// offending value) for the driver to skip one artifact and continue the build.
type DataError struct {
	Kind    Kind
	Field   string
	Value   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DataError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("%s: field %q (value %q): %s", e.Kind, e.Field, e.Value, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %s", e.Kind, e.Field, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap supports errors.Is/As chains.
func (e *DataError) Unwrap() error { return e.Cause }

// MissingField reports a required metadata key that was absent.
func MissingField(field string) *DataError {
	return &DataError{Kind: KindMissingField, Field: field, Message: "required metadata key is missing"}
}

// InvalidValue reports a present but unacceptable metadata value.
func InvalidValue(field, value, message string) *DataError {
	return &DataError{Kind: KindInvalidValue, Field: field, Value: value, Message: message}
}

// Structural reports a cross-field invariant violation.
func Structural(message string) *DataError {
	return &DataError{Kind: KindStructural, Message: message}
}

// Security reports path-traversal or unsanitized-content detection.
func Security(field, value, message string) *DataError {
	return &DataError{Kind: KindSecurity, Field: field, Value: value, Message: message}
}

// Config reports a site configuration problem.
func Config(message string) *DataError {
	return &DataError{Kind: KindConfig, Message: message}
}

// WrapIO wraps a filesystem or store failure.
func WrapIO(err error, message string) *DataError {
	return &DataError{Kind: KindIO, Message: message, Cause: err}
}

// IsKind checks whether any error in the chain is a DataError of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var de *DataError
		if !errors.As(err, &de) {
			return false
		}
		if de.Kind == kind {
			return true
		}
		err = de.Cause
	}
	return false
}

// GetKind extracts the kind from an error chain, or KindIO if no DataError is present.
func GetKind(err error) Kind {
	var de *DataError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindIO
}
