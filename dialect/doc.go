// Package dialect provides database dialect abstraction for the loam toolkit.
//
// This package defines the interfaces and types used for database-specific
// operations, allowing loam to support multiple database backends.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The dialect determines native column type names, identifier quoting style,
// the auto-increment keyword, and whether generated keys can be read back
// through a RETURNING clause.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Raw Expressions
//
// dialect.Raw marks a SQL fragment to be emitted verbatim, bypassing
// identifier quoting and parameter binding:
//
//	b.Update(map[string]any{"counter": dialect.Raw("counter + 1")})
//
// Raw expressions must only be built from trusted constants, never from
// end-user input.
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/syssam/loam/dialect"
//	    "github.com/syssam/loam/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// # Sub-packages
//
//   - dialect/sql: query builder and database/sql driver implementation
package dialect
