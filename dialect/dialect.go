package dialect

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect names supported by the toolkit.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// ExecQuerier wraps the two standard database operations.
//
// Exec executes a statement that does not return rows. The args argument
// must be of type []any, and v must be nil or *sql.Result.
//
// Query executes a statement that returns rows. The args argument must be
// of type []any, and v must be *sql.Rows (the dialect/sql wrapper).
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal interface a database backend exposes to the toolkit.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transaction commit and rollback on top of a driver.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// SupportsReturning reports whether the dialect can return generated keys
// inline with an INSERT statement (RETURNING clause).
func SupportsReturning(dialect string) bool {
	return dialect == Postgres || dialect == SQLite
}

// SupportsLastInsertID reports whether the dialect exposes the driver-level
// "last generated id" primitive after an INSERT.
func SupportsLastInsertID(dialect string) bool {
	return dialect == MySQL || dialect == SQLite
}

// RawExpr is a SQL fragment emitted verbatim, bypassing both identifier
// quoting and parameter binding. Raw expressions are compared by identity,
// never by content, and must only be built from trusted constants.
type RawExpr struct {
	expr string
}

// Raw wraps the given SQL fragment as a raw expression.
func Raw(expr string) *RawExpr {
	return &RawExpr{expr: expr}
}

// Expr returns the wrapped SQL fragment.
func (r *RawExpr) Expr() string { return r.expr }

func (r *RawExpr) String() string { return r.expr }

// QuoteLiteral quotes a Go value as a SQL literal for use in DDL default
// clauses. It is never used for query parameters, which are always bound.
func QuoteLiteral(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case *RawExpr:
		return v.Expr()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case time.Time:
		return "'" + v.UTC().Format("2006-01-02 15:04:05") + "'"
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
