package field

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a logical type cannot be resolved,
// either because the type itself is unknown or because the requested
// dialect is not supported.
var ErrUnsupportedType = errors.New("field: unsupported column type")

// ValidationError reports an invalid column declaration: a length or
// precision out of bounds, an empty enum domain, a default outside the
// declared domain, and so on.
type ValidationError struct {
	Name string // column name
	Err  error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field: column %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying reason.
func (e *ValidationError) Unwrap() error { return e.Err }

func validationf(name, format string, args ...any) error {
	return &ValidationError{Name: name, Err: fmt.Errorf(format, args...)}
}

// IsValidationError reports whether err is a column validation failure.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}
