package loam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/loam/dialect/sql"
	"github.com/syssam/loam/schema/field"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("loam: record not found")

	// ErrNotSingular is returned when a query that expects exactly one
	// result returns more than one.
	ErrNotSingular = errors.New("loam: record not singular")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	table string
	id    any // the key that was searched for, if known
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("loam: %s not found (id=%v)", e.table, e.id)
	}
	return fmt.Sprintf("loam: %s not found", e.table)
}

// Is reports whether the target error matches NotFoundError. This allows
// errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table the lookup targeted.
func (e *NotFoundError) Table() string { return e.table }

// ID returns the key that was searched for, if available.
func (e *NotFoundError) ID() any { return e.id }

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// NewNotFoundErrorWithID returns a new NotFoundError carrying the key that
// was searched for.
func NewNotFoundErrorWithID(table string, id any) *NotFoundError {
	return &NotFoundError{table: table, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError represents an error when a query expects one result but
// receives several.
type NotSingularError struct {
	table string
	count int // number of results returned, -1 if unknown
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	if e.count >= 0 {
		return fmt.Sprintf("loam: %s not singular (got %d results, expected 1)", e.table, e.count)
	}
	return fmt.Sprintf("loam: %s not singular", e.table)
}

// Is reports whether the target error matches NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// NewNotSingularError returns a new NotSingularError for the given table.
func NewNotSingularError(table string, count int) *NotSingularError {
	return &NotSingularError{table: table, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// NotLoadedError represents an error when accessing a relation that was
// not eager loaded.
type NotLoadedError struct {
	relation string
}

// Error returns the error string.
func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("loam: relation %q was not loaded", e.relation)
}

// NewNotLoadedError returns a new NotLoadedError for the given relation.
func NewNotLoadedError(relation string) *NotLoadedError {
	return &NotLoadedError{relation: relation}
}

// IsNotLoaded returns true if the error is a NotLoadedError.
func IsNotLoaded(err error) bool {
	if err == nil {
		return false
	}
	var e *NotLoadedError
	return errors.As(err, &e)
}

// QueryError wraps a read failure with the table and operation it hit.
type QueryError struct {
	Table string
	Op    string // "all", "first", "count", "exists", ...
	Err   error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("loam: querying %s (%s): %v", e.Table, e.Op, e.Err)
	}
	return fmt.Sprintf("loam: querying %s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.Err }

// NewQueryError returns a new QueryError.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// MutationError wraps a write failure with the table and operation it hit.
type MutationError struct {
	Table string
	Op    string // "create", "update", "delete"
	Err   error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("loam: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error { return e.Err }

// NewMutationError returns a new MutationError.
func NewMutationError(table, op string, err error) *MutationError {
	return &MutationError{Table: table, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "loam: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("loam: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise nil. A single error is returned as-is.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// The helpers below classify errors raised by the lower layers, so callers
// can depend on this package alone.

// IsConstraintError returns true if the error resulted from a database
// constraint violation.
func IsConstraintError(err error) bool {
	return sql.IsConstraintError(err)
}

// IsInvalidArgument returns true if the error was caused by a rejected
// builder argument: a bad operator, identifier, length or list.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, sql.ErrInvalidArgument)
}

// IsStateError returns true if the error was caused by using a builder
// outside its valid operation state.
func IsStateError(err error) bool {
	return errors.Is(err, sql.ErrState)
}

// IsUnsupportedType returns true if the error was caused by a column type
// that cannot be resolved for the requested dialect.
func IsUnsupportedType(err error) bool {
	return errors.Is(err, field.ErrUnsupportedType)
}

// IsValidationError returns true if the error was caused by an invalid
// column declaration.
func IsValidationError(err error) bool {
	return field.IsValidationError(err)
}
