package sql

import (
	"testing"

	"github.com/syssam/loam/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOp(t *testing.T) {
	for in, want := range map[string]string{
		"=":       "=",
		"like":    "LIKE",
		"ilike":   "ILIKE",
		" is  not ": "IS NOT",
		"In":      "IN",
		">=":      ">=",
	} {
		got, err := normalizeOp(in)
		require.NoError(t, err, "operator %q", in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "==", "BETWEEN", "= 1 OR 1", "; DROP"} {
		_, err := normalizeOp(in)
		assert.ErrorIs(t, err, ErrInvalidArgument, "operator %q", in)
	}
}

func TestJoinFragsFirstFragmentRule(t *testing.T) {
	assert.Equal(t, "", joinFrags(nil))
	assert.Equal(t, "a = 1", joinFrags([]frag{{sql: "a = 1", conj: and}}))
	assert.Equal(t,
		"a = 1 OR b = 2 AND c = 3",
		joinFrags([]frag{
			{sql: "a = 1", conj: and},
			{sql: "b = 2", conj: or},
			{sql: "c = 3", conj: and},
		}),
	)
}

func TestConditionNullComparison(t *testing.T) {
	q, args, err := NewBuilder(dialect.MySQL).
		Table("users").
		Where("deleted_at", "IS", nil).
		OrWhere("archived_at", "IS NOT", nil).
		SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE `deleted_at` IS NULL OR `archived_at` IS NOT NULL", q)
	assert.Empty(t, args)

	_, _, err = NewBuilder(dialect.MySQL).
		Table("users").
		Where("deleted_at", "IS", "2020-01-01").
		SQL()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConditionIn(t *testing.T) {
	q, args, err := NewBuilder(dialect.Postgres).
		Table("users").
		WhereIn("id", []int{1, 2, 3}).
		SQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "id" IN ($1, $2, $3)`, q)
	assert.Equal(t, []any{1, 2, 3}, args)

	_, _, err = NewBuilder(dialect.Postgres).
		Table("users").
		WhereIn("id", []int{}).
		SQL()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConditionRawExpression(t *testing.T) {
	q, args, err := NewBuilder(dialect.MySQL).
		Table("events").
		Where("created_at", ">=", dialect.Raw("NOW() - INTERVAL 1 DAY")).
		SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `events` WHERE `created_at` >= NOW() - INTERVAL 1 DAY", q)
	assert.Empty(t, args)
}

func TestSliceValues(t *testing.T) {
	vs, ok := sliceValues([]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, vs)

	vs, ok = sliceValues([]any{1, "b"})
	require.True(t, ok)
	assert.Equal(t, []any{1, "b"}, vs)

	_, ok = sliceValues("nope")
	assert.False(t, ok)
	_, ok = sliceValues(nil)
	assert.False(t, ok)
}
