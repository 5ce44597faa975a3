// Package field provides fluent builders for declaring logical column
// types and resolving them to native dialect types.
//
// Declarations are dialect-neutral:
//
//	field.Varchar("email").Size(120).Unique()
//	field.Decimal("price").Precision(12, 2).Default("0.00")
//	field.Enum("status").Values("pending", "active").Default("pending")
//	field.BigInt("id").PrimaryKey().AutoIncrement()
//
// Resolve validates the declaration once, against the strictest backend's
// bounds, and maps it to the target dialect:
//
//	def, err := field.Varchar("email").Size(120).Resolve(dialect.Postgres)
//	// def.NativeType == "VARCHAR(120)"
//	// def.SQL        == `"email" VARCHAR(120) NOT NULL`
//
// Backends without a native type for a declaration get the closest
// equivalent: enums become TEXT plus a CHECK constraint outside MySQL,
// UUIDs become CHAR(36) on MySQL and TEXT on SQLite, and the text and
// blob size ladders collapse to TEXT/BYTEA on PostgreSQL.
package field
