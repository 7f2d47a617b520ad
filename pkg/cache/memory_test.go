package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var got map[string]string
	found, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", map[string]string{"a": "b"}, 0))
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", got["a"])

	require.NoError(t, c.Delete(ctx, "k", "other"))
	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "session", "x", 20*time.Millisecond))
	exists, _ := c.Exists(ctx, "session")
	assert.True(t, exists)

	time.Sleep(40 * time.Millisecond)

	exists, _ = c.Exists(ctx, "session")
	assert.False(t, exists)

	var v string
	found, err := c.Get(ctx, "session", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, c.Len(), "expired key is dropped on read")
}

func TestMemoryCache_SweepsExpiredOnSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCacheWithSweep(10 * time.Millisecond)

	for i := 0; i < 1000; i++ {
		require.NoError(t, c.Set(ctx, Key(NamespaceRevokedSession, i), true, 5*time.Millisecond))
	}
	require.GreaterOrEqual(t, c.Len(), 1)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, c.Set(ctx, "fresh", true, 0))

	assert.Equal(t, 1, c.Len(), "only the non-expiring key is left")
	exists, _ := c.Exists(ctx, "fresh")
	assert.True(t, exists)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "book:7", Key(NamespaceBook, 7))
	assert.Equal(t, "session:revoked:abc", Key(NamespaceRevokedSession, "abc"))
	assert.Equal(t, "book", Key(NamespaceBook))
}
