package errors

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// ValidationError describes a single invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Code returns the error code for this error type.
func (e *ValidationError) Code() Code {
	return ErrCodeInvalidInput
}

// Invalid returns a coded error wrapping a ValidationError for field.
func Invalid(field, format string, args ...any) *Error {
	v := &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
	return Wrap(ErrCodeInvalidInput, v, "%s", v.Error())
}

// ValidatePath validates a relative file path for safety.
// It rejects paths that could escape a base directory:
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateRange checks that v is finite and within [min, max].
func ValidateRange(field string, v, min, max float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Wrap(ErrCodeOutOfRange, &ValidationError{Field: field, Message: "must be a finite number"}, "%s", field)
	}
	if v < min || v > max {
		return Wrap(ErrCodeOutOfRange,
			&ValidationError{Field: field, Message: fmt.Sprintf("%g outside [%g, %g]", v, min, max)},
			"%s out of range", field)
	}
	return nil
}
