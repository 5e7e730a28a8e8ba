package apperrors

import "errors"

// Catalog errors
var (
	// ErrCourseNotFound is returned when no course matches a requested code.
	ErrCourseNotFound = errors.New("course not found")

	// ErrMissingField is wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing required field")

	// ErrCatalogIO is wrapped around read/write failures of the catalog document.
	ErrCatalogIO = errors.New("catalog document i/o failed")

	// ErrCatalogDecode is wrapped around malformed catalog documents.
	ErrCatalogDecode = errors.New("catalog document is not valid JSON")
)

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// MissingFieldError reports a required form field that was not submitted.
type MissingFieldError struct {
	Field string
}

// NewMissingFieldError creates a MissingFieldError for the named field
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// Error implements error interface
func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// Unwrap implements errors.Unwrap interface
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCourseNotFoundError creates a not-found error naming the requested code
func NewCourseNotFoundError(code string) error {
	return &CustomError{
		Err:     ErrCourseNotFound,
		Message: "no course found with code '" + code + "'",
	}
}
