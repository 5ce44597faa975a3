package loam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache()

	v, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, c.Set(ctx, "users:a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "users:b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "posts:a", []byte("3"), 0))
	assert.Equal(t, 3, c.Len())

	v, err = c.Get(ctx, "users:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, c.Delete(ctx, "users:a"))
	v, err = c.Get(ctx, "users:a")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, c.DeletePrefix(ctx, "users:"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, c.Len())
}

func TestRowCodecRoundTrip(t *testing.T) {
	t.Parallel()

	in := []map[string]any{
		{"id": int64(1), "name": "alice", "score": 4.5, "active": true, "note": nil},
		{"id": int64(2), "name": "bob", "score": 0.0, "active": false, "note": "x"},
	}
	data, err := encodeRows(in)
	require.NoError(t, err)

	out, err := decodeRows(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "alice", out[0]["name"])
	assert.EqualValues(t, 1, out[0]["id"])
	assert.Equal(t, true, out[0]["active"])
	assert.Equal(t, "x", out[1]["note"])

	_, err = decodeRows([]byte("not msgpack"))
	assert.Error(t, err)
}

func TestCacheKeyString(t *testing.T) {
	t.Parallel()

	k := CacheKey{Table: "users", SQL: "SELECT * FROM `users`", Args: []any{1, "a"}}
	assert.Contains(t, k.String(), "users:")
	assert.Contains(t, k.String(), "SELECT * FROM `users`")

	// Distinct bindings produce distinct keys.
	k2 := CacheKey{Table: "users", SQL: "SELECT * FROM `users`", Args: []any{2, "a"}}
	assert.NotEqual(t, k.String(), k2.String())
}

func TestCacheKeyArgsDoNotRunTogether(t *testing.T) {
	t.Parallel()

	// Adjacent string arguments must stay distinguishable: splitting the
	// same characters differently is a different query.
	sql := "SELECT * FROM `users` WHERE `a` = ? AND `b` = ?"
	k1 := CacheKey{Table: "users", SQL: sql, Args: []any{"a", "bc"}}
	k2 := CacheKey{Table: "users", SQL: sql, Args: []any{"ab", "c"}}
	assert.NotEqual(t, k1.String(), k2.String())

	// Type changes alone are enough to separate keys.
	k3 := CacheKey{Table: "users", SQL: sql, Args: []any{1, "2"}}
	k4 := CacheKey{Table: "users", SQL: sql, Args: []any{"1", 2}}
	assert.NotEqual(t, k3.String(), k4.String())

	// A seeded entry is never served under a differently-bound key.
	ctx := context.Background()
	c := NewMemoryCache()
	data, err := encodeRows([]map[string]any{{"id": int64(1)}})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, k1.String(), data, 0))
	v, err := c.Get(ctx, k2.String())
	require.NoError(t, err)
	assert.Nil(t, v)
}
