package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Sentinel errors of the sql layer. All of them are raised before a
// statement is sent to the driver, never after.
var (
	// ErrInvalidArgument is returned for a bad operator, a bad length or
	// bound, an empty required list, a malformed alias, or an identifier
	// that cannot be sanitized.
	ErrInvalidArgument = errors.New("sql: invalid argument")

	// ErrState is returned when an operation-specific accessor is called
	// outside its valid builder state.
	ErrState = errors.New("sql: invalid builder state")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("sql: "+format+": %w", append(args, ErrInvalidArgument)...)
}

func statef(format string, args ...any) error {
	return fmt.Errorf("sql: "+format+": %w", append(args, ErrState)...)
}

// ExecError wraps a statement preparation or execution failure reported by
// the driver. It is not retried by this layer.
type ExecError struct {
	Query string
	Err   error
}

// Error returns the error string.
func (e *ExecError) Error() string {
	return fmt.Sprintf("sql: executing %q: %v", e.Query, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *ExecError) Unwrap() error { return e.Err }

// ConstraintError represents a database constraint violation reported by
// the backend driver.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("sql: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e *ConstraintError) Unwrap() error { return e.wrap }

// IsConstraintError returns true if the error resulted from a database
// constraint violation.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConstraintError
	return errors.As(err, &e)
}

// MySQL integrity violation codes worth recognizing.
const (
	mysqlDupEntry        = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// wrapExecError converts a driver failure to an ExecError, detecting
// constraint violations of the supported backends on the way.
func wrapExecError(query string, err error) error {
	if err == nil {
		return nil
	}
	var pqerr *pq.Error
	if errors.As(err, &pqerr) && strings.HasPrefix(string(pqerr.Code), "23") {
		return &ConstraintError{msg: pqerr.Message, wrap: &ExecError{Query: query, Err: err}}
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		switch myerr.Number {
		case mysqlDupEntry, mysqlRowIsReferenced, mysqlNoReferencedRow:
			return &ConstraintError{msg: myerr.Message, wrap: &ExecError{Query: query, Err: err}}
		}
	}
	// modernc.org/sqlite reports violations by message only.
	if msg := err.Error(); strings.Contains(msg, "constraint failed") || strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "FOREIGN KEY constraint") {
		return &ConstraintError{msg: msg, wrap: &ExecError{Query: query, Err: err}}
	}
	return &ExecError{Query: query, Err: err}
}
