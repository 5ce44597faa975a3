package sql

import (
	"testing"

	"github.com/syssam/loam/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	id  int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return r.id, r.err }
func (r fakeResult) RowsAffected() (int64, error) { return 0, nil }

func TestRecoverInsertIDsEchoesSuppliedKeys(t *testing.T) {
	rows := []map[string]any{
		{"id": 100, "name": "alice"},
		{"id": 101, "name": "bob"},
	}
	for _, d := range []string{dialect.MySQL, dialect.Postgres, dialect.SQLite} {
		ids, err := recoverInsertIDs(d, "id", rows, fakeResult{})
		require.NoError(t, err, "dialect %s", d)
		assert.Equal(t, []any{100, 101}, ids, "dialect %s", d)
	}
}

func TestRecoverInsertIDsLastInsertID(t *testing.T) {
	rows := []map[string]any{{"name": "alice"}}
	ids, err := recoverInsertIDs(dialect.MySQL, "id", rows, fakeResult{id: 9})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(9)}, ids)

	_, err = recoverInsertIDs(dialect.SQLite, "id", rows, fakeResult{err: assert.AnError})
	assert.ErrorIs(t, err, ErrState)
}

func TestRecoverInsertIDsUnrecoverable(t *testing.T) {
	// A partial key set does not count as supplied.
	rows := []map[string]any{
		{"id": 100, "name": "alice"},
		{"name": "bob"},
	}
	ids, err := recoverInsertIDs(dialect.MySQL, "id", rows, fakeResult{id: 9})
	require.NoError(t, err)
	assert.Empty(t, ids)

	// No primary key known at all.
	ids, err = recoverInsertIDs(dialect.MySQL, "", rows[:1], fakeResult{id: 9})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(9)}, ids)
}
