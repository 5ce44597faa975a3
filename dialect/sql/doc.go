// Package sql provides the query builder and the database/sql execution
// shim used by loam.
//
// A Builder accumulates exactly one logical statement through a fluent API
// and compiles it into dialect-correct SQL. Identifiers pass through a
// strict character allow-list before quoting, operators are validated
// against a fixed set, and every value is bound through positional
// parameters. Values are never interpolated into statement text unless the
// caller opts in explicitly with dialect.Raw.
//
//	drv, _ := sql.Open(dialect.Postgres, dsn)
//	rows, err := sql.NewBuilder(dialect.Postgres).
//		Driver(drv).
//		Table("users").
//		Where("age", ">=", 21).
//		OrderBy("name").
//		All(ctx)
//
// Builder errors are sticky: the first invalid call is recorded and every
// later call becomes a no-op until a terminal surfaces the error.
package sql
