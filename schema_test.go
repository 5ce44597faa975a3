package loam_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/loam"
	"github.com/syssam/loam/dialect"
	"github.com/syssam/loam/schema/field"
)

func TestSchemaTableNaming(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "users", loam.NewSchema("user").TableName())
	assert.Equal(t, "order_items", loam.NewSchema("OrderItem").TableName())
	assert.Equal(t, "categories", loam.NewSchema("category").TableName())
	assert.Equal(t, "people", loam.NewSchema("person", field.Int("id")).Table("people").TableName())
}

func TestSchemaPrimaryKey(t *testing.T) {
	t.Parallel()

	s := loam.NewSchema("user",
		field.Varchar("uuid").PrimaryKey(),
		field.Varchar("name"),
	)
	assert.Equal(t, "uuid", s.PrimaryKey())

	// Falls back to a column named "id".
	s = loam.NewSchema("user",
		field.BigInt("id"),
		field.Varchar("name"),
	)
	assert.Equal(t, "id", s.PrimaryKey())

	s = loam.NewSchema("setting", field.Varchar("key"), field.Varchar("value"))
	assert.Equal(t, "", s.PrimaryKey())
}

func TestSchemaColumns(t *testing.T) {
	t.Parallel()

	s := loam.NewSchema("user",
		field.BigInt("id").PrimaryKey().AutoIncrement(),
		field.Varchar("name"),
	)
	assert.Equal(t, []string{"id", "name"}, s.ColumnNames())
	assert.NotNil(t, s.Column("name"))
	assert.Nil(t, s.Column("missing"))
}

func TestSchemaCreateSQL(t *testing.T) {
	t.Parallel()

	s := loam.NewSchema("user",
		field.BigInt("id").PrimaryKey().AutoIncrement(),
		field.Varchar("email").Size(120).Unique(),
		field.Enum("status").Values("active", "banned").Default("active"),
	)

	q, err := s.CreateSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "users" (`+
			`"id" INTEGER PRIMARY KEY AUTOINCREMENT, `+
			`"email" VARCHAR(120) NOT NULL UNIQUE, `+
			`"status" TEXT NOT NULL DEFAULT 'active' CHECK ("status" IN ('active', 'banned')))`,
		q,
	)

	q, err = s.CreateSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS `users` ("+
			"`id` BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY, "+
			"`email` VARCHAR(120) NOT NULL UNIQUE, "+
			"`status` ENUM('active', 'banned') NOT NULL DEFAULT 'active')",
		q,
	)

	q, err = s.DropSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "users"`, q)

	_, err = loam.NewSchema("empty").CreateSQL(dialect.MySQL)
	assert.Error(t, err)

	_, err = loam.NewSchema("user", field.Enum("status")).CreateSQL(dialect.MySQL)
	assert.True(t, loam.IsValidationError(err))
}
