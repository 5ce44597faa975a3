package loam_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/loam"
	"github.com/syssam/loam/dialect"
	dsql "github.com/syssam/loam/dialect/sql"
	"github.com/syssam/loam/schema/field"
)

// openSQLite opens an in-memory database pinned to a single connection, so
// every statement sees the same memory store.
func openSQLite(t *testing.T) *dsql.Driver {
	t.Helper()
	drv, err := dsql.Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })
	return drv
}

func TestSQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	drv := openSQLite(t)

	authors := loam.NewSchema("author",
		field.BigInt("id").PrimaryKey().AutoIncrement(),
		field.Varchar("name"),
		field.Varchar("email").Size(120).Unique(),
	)
	books := loam.NewSchema("book",
		field.BigInt("id").PrimaryKey().AutoIncrement(),
		field.BigInt("author_id").References("authors", "id").OnDelete("cascade"),
		field.Varchar("title"),
	)
	authors.HasMany("books", books, "author_id")

	am := loam.NewModel(drv, authors)
	bm := loam.NewModel(drv, books)
	require.NoError(t, am.CreateTable(ctx))
	require.NoError(t, bm.CreateTable(ctx))

	// Generated keys come back through RETURNING.
	ann, err := am.Create(ctx, map[string]any{"name": "ann", "email": "ann@example.com"})
	require.NoError(t, err)
	require.NotNil(t, ann.ID())
	ben, err := am.Create(ctx, map[string]any{"name": "ben", "email": "ben@example.com"})
	require.NoError(t, err)

	_, err = bm.CreateMany(ctx,
		map[string]any{"author_id": ann.ID(), "title": "one"},
		map[string]any{"author_id": ann.ID(), "title": "two"},
		map[string]any{"author_id": ben.ID(), "title": "three"},
	)
	require.NoError(t, err)

	// Unique violations surface as constraint errors.
	_, err = am.Create(ctx, map[string]any{"name": "imposter", "email": "ann@example.com"})
	require.Error(t, err)
	assert.True(t, loam.IsConstraintError(err))

	// Find, update, and read back.
	got, err := am.Find(ctx, ann.ID())
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Get("name"))
	got.Set("name", "anne")
	require.NoError(t, am.Save(ctx, got))
	got, err = am.Find(ctx, ann.ID())
	require.NoError(t, err)
	assert.Equal(t, "anne", got.Get("name"))

	// Eager loading hydrates every author's books.
	all, err := am.All(ctx, "books")
	require.NoError(t, err)
	require.Len(t, all, 2)
	byName := map[string]*loam.Record{}
	for _, r := range all {
		byName[r.Get("name").(string)] = r
	}
	annBooks, err := byName["anne"].Many("books")
	require.NoError(t, err)
	assert.Len(t, annBooks, 2)
	benBooks, err := byName["ben"].Many("books")
	require.NoError(t, err)
	assert.Len(t, benBooks, 1)

	// Builder terminals against the live database.
	n, err := bm.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	page, err := bm.Query().OrderBy("id").Paginate(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "three", page.Data[0]["title"])

	exists, err := bm.Query().Where("title", "two").Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	// Delete and verify the row is gone.
	require.NoError(t, am.Delete(ctx, got))
	_, err = am.Find(ctx, ann.ID())
	assert.True(t, loam.IsNotFound(err))
}
