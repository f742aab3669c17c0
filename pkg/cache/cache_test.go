package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))

	_, hit, _ = c.Get(ctx, "key")
	assert.False(t, hit, "NullCache should not store data")
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	_, hit, err := c.Get(ctx, "tiling:abc")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "tiling:abc", []byte(`{"width":3}`), time.Hour))

	data, hit, err := c.Get(ctx, "tiling:abc")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"width":3}`, string(data))

	require.NoError(t, c.Delete(ctx, "tiling:abc"))
	_, hit, _ = c.Get(ctx, "tiling:abc")
	assert.False(t, hit)

	// Deleting a missing key is not an error.
	assert.NoError(t, c.Delete(ctx, "tiling:abc"))
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, hit, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit, "expired entry should be a miss")

	_, statErr := os.Stat(c.path("short"))
	assert.True(t, os.IsNotExist(statErr), "expired entry should be removed")

	require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))
	_, hit, _ = c.Get(ctx, "forever")
	assert.True(t, hit)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, os.WriteFile(c.path("k"), []byte("not json"), 0644))

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}

	n, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	entries, err := os.ReadDir(c.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	assert.Equal(t, h1, Hash([]byte("hello")), "Hash should be deterministic")
	assert.NotEqual(t, h1, Hash([]byte("world")))
	assert.Len(t, h1, 64)
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.TilingKey(5, 3, []int{4, 3, 2, 1})
	assert.True(t, strings.HasPrefix(a, "tiling:"))
	assert.Equal(t, a, k.TilingKey(5, 3, []int{4, 3, 2, 1}))
	assert.NotEqual(t, a, k.TilingKey(3, 5, []int{4, 3, 2, 1}), "dimensions are ordered")
	assert.NotEqual(t, a, k.TilingKey(5, 3, []int{1, 2, 3, 4}), "palette order matters")
	assert.Equal(t, k.TilingKey(2, 2, nil), k.TilingKey(2, 2, []int{}))

	png := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "png", DPI: 200})
	svg := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "svg", DPI: 200})
	assert.NotEqual(t, png, svg)
	assert.NotEqual(t, png, k.ArtifactKey("hash", ArtifactKeyOpts{Format: "png", DPI: 100}))
	assert.NotEqual(t, png, k.ArtifactKey("hash", ArtifactKeyOpts{
		Format: "png", DPI: 200, Colors: map[int]string{1: "#000000"},
	}))

	assert.Equal(t, "record:123", k.RecordKey("123"))
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "team:a:")

	assert.Equal(t, "team:a:record:xyz", scoped.RecordKey("xyz"))
	assert.True(t, strings.HasPrefix(scoped.TilingKey(1, 1, nil), "team:a:tiling:"))
	assert.True(t, strings.HasPrefix(scoped.ArtifactKey("h", ArtifactKeyOpts{}), "team:a:artifact:"))

	// Nil inner falls back to DefaultKeyer.
	assert.Equal(t, "p:record:1", NewScopedKeyer(nil, "p:").RecordKey("1"))
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	ctx := context.Background()
	errTransient := errors.New("connection reset")
	errPermanent := errors.New("bad request")

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errTransient)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	assert.Equal(t, errPermanent, err)
	assert.Equal(t, 1, calls)

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(errTransient)
	})
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)

	assert.Nil(t, Retryable(nil))
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisKeyPrefix(t *testing.T) {
	c := &RedisCache{prefix: "roomtile:"}
	assert.Equal(t, "roomtile:record:1", c.key("record:1"))
}
