package field_test

import (
	"testing"

	"github.com/syssam/loam/dialect"
	"github.com/syssam/loam/schema/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNativeTypes(t *testing.T) {
	tests := []struct {
		col      *field.Column
		mysql    string
		postgres string
		sqlite   string
	}{
		{field.TinyInt("a"), "TINYINT", "SMALLINT", "INTEGER"},
		{field.SmallInt("a"), "SMALLINT", "SMALLINT", "INTEGER"},
		{field.MediumInt("a"), "MEDIUMINT", "INTEGER", "INTEGER"},
		{field.Int("a"), "INT", "INTEGER", "INTEGER"},
		{field.Integer("a"), "INT", "INTEGER", "INTEGER"},
		{field.BigInt("a"), "BIGINT", "BIGINT", "INTEGER"},
		{field.Decimal("a"), "DECIMAL(10, 0)", "NUMERIC(10, 0)", "DECIMAL(10, 0)"},
		{field.Numeric("a").Precision(12, 2), "DECIMAL(12, 2)", "NUMERIC(12, 2)", "DECIMAL(12, 2)"},
		{field.Float("a"), "FLOAT", "REAL", "REAL"},
		{field.Double("a"), "DOUBLE", "DOUBLE PRECISION", "REAL"},
		{field.Real("a"), "REAL", "REAL", "REAL"},
		{field.Bit("a").Size(8), "BIT(8)", "BIT(8)", "INTEGER"},
		{field.Bool("a"), "TINYINT(1)", "BOOLEAN", "INTEGER"},
		{field.Serial("a"), "SERIAL", "SERIAL", "INTEGER"},
		{field.Date("a"), "DATE", "DATE", "DATE"},
		{field.DateTime("a"), "DATETIME", "TIMESTAMP", "DATETIME"},
		{field.DateTime("a").Fsp(3), "DATETIME(3)", "TIMESTAMP(3)", "DATETIME"},
		{field.Timestamp("a"), "TIMESTAMP", "TIMESTAMP", "TIMESTAMP"},
		{field.Time("a"), "TIME", "TIME", "TIME"},
		{field.Year("a"), "YEAR", "SMALLINT", "INTEGER"},
		{field.Char("a").Size(2), "CHAR(2)", "CHAR(2)", "CHAR(2)"},
		{field.Varchar("a"), "VARCHAR(255)", "VARCHAR(255)", "VARCHAR(255)"},
		{field.Varchar("a").Size(120), "VARCHAR(120)", "VARCHAR(120)", "VARCHAR(120)"},
		{field.TinyText("a"), "TINYTEXT", "TEXT", "TEXT"},
		{field.Text("a"), "TEXT", "TEXT", "TEXT"},
		{field.MediumText("a"), "MEDIUMTEXT", "TEXT", "TEXT"},
		{field.LongText("a"), "LONGTEXT", "TEXT", "TEXT"},
		{field.Binary("a").Size(16), "BINARY(16)", "BYTEA", "BLOB"},
		{field.VarBinary("a").Size(16), "VARBINARY(16)", "BYTEA", "BLOB"},
		{field.TinyBlob("a"), "TINYBLOB", "BYTEA", "BLOB"},
		{field.Blob("a"), "BLOB", "BYTEA", "BLOB"},
		{field.MediumBlob("a"), "MEDIUMBLOB", "BYTEA", "BLOB"},
		{field.LongBlob("a"), "LONGBLOB", "BYTEA", "BLOB"},
		{field.Enum("a").Values("x", "y"), "ENUM('x', 'y')", "TEXT", "TEXT"},
		{field.Set("a").Values("x", "y"), "SET('x', 'y')", "TEXT", "TEXT"},
		{field.JSON("a"), "JSON", "JSON", "TEXT"},
		{field.JSONB("a"), "JSON", "JSONB", "TEXT"},
		{field.UUID("a"), "CHAR(36)", "UUID", "TEXT"},
		{field.Geometry("a"), "GEOMETRY", "GEOMETRY", "BLOB"},
		{field.Point("a"), "POINT", "POINT", "BLOB"},
		{field.LineString("a"), "LINESTRING", "PATH", "BLOB"},
		{field.Polygon("a"), "POLYGON", "POLYGON", "BLOB"},
	}
	for _, tt := range tests {
		name := tt.col.Descriptor().Type.String()
		def, err := tt.col.Resolve(dialect.MySQL)
		require.NoError(t, err, "mysql %s", name)
		assert.Equal(t, tt.mysql, def.NativeType, "mysql %s", name)

		def, err = tt.col.Resolve(dialect.Postgres)
		require.NoError(t, err, "postgres %s", name)
		assert.Equal(t, tt.postgres, def.NativeType, "postgres %s", name)

		def, err = tt.col.Resolve(dialect.SQLite)
		require.NoError(t, err, "sqlite %s", name)
		assert.Equal(t, tt.sqlite, def.NativeType, "sqlite %s", name)
	}
}

func TestResolveClause(t *testing.T) {
	def, err := field.Varchar("email").Size(120).Unique().Resolve(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"email" VARCHAR(120) NOT NULL UNIQUE`, def.SQL)

	def, err = field.Varchar("nickname").Nullable().Resolve(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`nickname` VARCHAR(255)", def.SQL)

	def, err = field.Decimal("price").Precision(12, 2).Default("0.00").Resolve(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`price` DECIMAL(12, 2) NOT NULL DEFAULT '0.00'", def.SQL)

	def, err = field.Timestamp("created_at").Default(dialect.Raw("CURRENT_TIMESTAMP")).Resolve(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `"created_at" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP`, def.SQL)
}

func TestResolveAutoIncrement(t *testing.T) {
	col := func() *field.Column { return field.BigInt("id").PrimaryKey().AutoIncrement() }

	def, err := col().Resolve(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`id` BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY", def.SQL)

	def, err = col().Resolve(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"id" BIGSERIAL PRIMARY KEY`, def.SQL)

	def, err = col().Resolve(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`, def.SQL)

	def, err = field.Int("id").PrimaryKey().AutoIncrement().Resolve(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"id" SERIAL PRIMARY KEY`, def.SQL)
}

func TestResolveEnumCheck(t *testing.T) {
	col := field.Enum("status").Values("pending", "active").Default("pending")

	def, err := col.Resolve(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`status` ENUM('pending', 'active') NOT NULL DEFAULT 'pending'", def.SQL)

	def, err = col.Resolve(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"status" TEXT NOT NULL DEFAULT 'pending' CHECK ("status" IN ('pending', 'active'))`, def.SQL)

	def, err = col.Resolve(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `"status" TEXT NOT NULL DEFAULT 'pending' CHECK ("status" IN ('pending', 'active'))`, def.SQL)
}

func TestResolveForeignKey(t *testing.T) {
	def, err := field.BigInt("user_id").
		References("users", "id").
		OnDelete("cascade").
		OnUpdate("set null").
		Resolve(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"user_id" BIGINT NOT NULL REFERENCES "users" ("id") ON DELETE CASCADE ON UPDATE SET NULL`, def.SQL)

	_, err = field.BigInt("user_id").References("users", "id").OnDelete("nuke").Resolve(dialect.Postgres)
	assert.True(t, field.IsValidationError(err))

	_, err = field.BigInt("user_id").References("users", "").Resolve(dialect.Postgres)
	assert.True(t, field.IsValidationError(err))
}

func TestResolveValidation(t *testing.T) {
	cases := []*field.Column{
		field.Varchar("a").Size(70000),
		field.Varchar("a").Size(-1),
		field.Bit("a").Size(65),
		field.Decimal("a").Precision(66, 0),
		field.Decimal("a").Precision(10, 31),
		field.Decimal("a").Precision(4, 5),
		field.DateTime("a").Fsp(7),
		field.Enum("a"),
		field.Enum("a").Values("x", ""),
		field.Enum("a").Values("x", "x"),
		field.Enum("a").Values("x").Default("y"),
		field.Bool("a").Default("yes"),
		field.UUID("a").Default("not-a-uuid"),
		field.UUID("a").Default("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"),
		field.Varchar("a; --"),
		field.Text("a").AutoIncrement(),
		field.Int("a").AutoIncrement(),
		field.Int("a").PrimaryKey().AutoIncrement().Default(1),
	}
	for _, col := range cases {
		_, err := col.Resolve(dialect.MySQL)
		assert.True(t, field.IsValidationError(err), "column %s (%s): %v",
			col.Name(), col.Descriptor().Type, err)
	}

	// Canonical UUID defaults pass.
	_, err := field.UUID("a").Default("6ba7b810-9dad-11d1-80b4-00c04fd430c8").Resolve(dialect.MySQL)
	assert.NoError(t, err)

	// Boolean defaults accept the literal vocabulary.
	for _, v := range []any{true, false, 0, 1, dialect.Raw("1")} {
		_, err := field.Bool("a").Default(v).Resolve(dialect.Postgres)
		assert.NoError(t, err, "default %v", v)
	}
}

func TestResolveUnsupported(t *testing.T) {
	_, err := field.Varchar("a").Resolve("oracle")
	assert.ErrorIs(t, err, field.ErrUnsupportedType)

	_, err = field.New("a", field.Type(200)).Resolve(dialect.MySQL)
	assert.ErrorIs(t, err, field.ErrUnsupportedType)

	assert.Panics(t, func() { field.Enum("a").MustResolve(dialect.MySQL) })
	assert.NotPanics(t, func() { field.Text("a").MustResolve(dialect.MySQL) })
}

func TestResolveUnsigned(t *testing.T) {
	def, err := field.Int("a").Unsigned().Resolve(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`a` INT UNSIGNED NOT NULL", def.SQL)

	// Other dialects ignore the modifier.
	def, err = field.Int("a").Unsigned().Resolve(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"a" INTEGER NOT NULL`, def.SQL)
}
