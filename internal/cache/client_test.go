package cache

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Client {
	t.Helper()
	lruClient, err := NewLRUClient(16)
	require.NoError(t, err)
	return map[string]Client{
		"memory": NewMemoryClient(),
		"lru":    lruClient,
	}
}

func TestClient_GetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrCacheMiss)

			require.NoError(t, c.Set(ctx, "stations|Gent|be|false", []byte(`["a"]`), 0))
			got, err := c.Get(ctx, "stations|Gent|be|false")
			require.NoError(t, err)
			assert.Equal(t, `["a"]`, string(got))

			require.NoError(t, c.Delete(ctx, "stations|Gent|be|false"))
			_, err = c.Get(ctx, "stations|Gent|be|false")
			assert.ErrorIs(t, err, ErrCacheMiss)
			assert.NoError(t, c.Close())
		})
	}
}

func TestClient_SetCopiesValue(t *testing.T) {
	ctx := context.Background()

	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			value := []byte("brussel")
			require.NoError(t, c.Set(ctx, "k", value, 0))
			value[0] = 'X'

			got, err := c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "brussel", string(got))
		})
	}
}

func TestClient_TTLExpiry(t *testing.T) {
	ctx := context.Background()

	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Millisecond))
			require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))
			time.Sleep(5 * time.Millisecond)

			_, err := c.Get(ctx, "short")
			assert.ErrorIs(t, err, ErrCacheMiss)
			_, err = c.Get(ctx, "forever")
			assert.NoError(t, err)
		})
	}
}

func TestClient_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()

	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "stations|a", []byte("1"), 0))
			require.NoError(t, c.Set(ctx, "stations|b", []byte("2"), 0))
			require.NoError(t, c.Set(ctx, "dataset|csv", []byte("3"), 0))

			require.NoError(t, c.DeleteByPrefix(ctx, "stations|"))

			_, err := c.Get(ctx, "stations|a")
			assert.ErrorIs(t, err, ErrCacheMiss)
			_, err = c.Get(ctx, "stations|b")
			assert.ErrorIs(t, err, ErrCacheMiss)
			_, err = c.Get(ctx, "dataset|csv")
			assert.NoError(t, err)
		})
	}
}

func TestMemoryClient_Unbounded(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	for i := 0; i < DefaultLRUSize+10; i++ {
		require.NoError(t, c.Set(ctx, Key("k", strconv.Itoa(i)), []byte("v"), 0))
	}
	assert.Equal(t, DefaultLRUSize+10, c.Len())
}

func TestLRUClient_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRUClient(2)
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	assert.Equal(t, 2, c.Len())
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestMemoryClient_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := Key("stations", string(rune('a'+n)))
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, key, []byte("v"), 0)
				_, _ = c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, c.Len())
}

func TestNew(t *testing.T) {
	c, err := New(Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryClient{}, c)

	c, err = New(Config{Driver: DriverLRU, MaxEntries: 5})
	require.NoError(t, err)
	assert.IsType(t, &LRUClient{}, c)

	_, err = New(Config{Driver: "apc"})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "stations|Gent|be|true", Key("stations", "Gent", "be", "true"))
	assert.Equal(t, "stations||", Key("stations", "", ""))
}
