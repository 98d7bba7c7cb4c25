package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(time.Hour, zerolog.Nop())
	t.Cleanup(func() { c.Close() })
	return c
}

// fakeClock lets tests move time forward without sleeping
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
		want  interface{}
	}{
		{
			name:  "string",
			key:   "k1",
			value: "value",
			want:  "value",
		},
		{
			name:  "integer comes back as JSON number",
			key:   "k2",
			value: 42,
			want:  float64(42),
		},
		{
			name: "struct comes back as map",
			key:  "k3",
			value: struct {
				Code string `json:"code"`
			}{Code: "3017620422003"},
			want: map[string]interface{}{"code": "3017620422003"},
		},
		{
			name:  "nil pointer amount",
			key:   "k4",
			value: domain.NutrientMap{domain.Fat: nil},
			want:  map[string]interface{}{"fat": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, tt.key, tt.value, time.Minute))

			got, err := c.Get(ctx, tt.key)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryCache_SetUnmarshalable(t *testing.T) {
	c := newTestCache(t)

	err := c.Set(context.Background(), "bad", make(chan int), time.Minute)

	assert.Error(t, err)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clock.Now
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "v", time.Minute))
	require.NoError(t, c.Set(ctx, "forever", "v", 0))

	clock.Advance(2 * time.Minute)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	exists, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	assert.Equal(t, 1, c.removeExpired())
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_GetMiss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "never-set"))
}

func TestMemoryCache_Keys(t *testing.T) {
	c := newTestCache(t)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clock.Now
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dailyintake:2026-01-02", 1, 0))
	require.NoError(t, c.Set(ctx, "dailyintake:2026-01-01", 1, 0))
	require.NoError(t, c.Set(ctx, "dailyintake:2025-12-31", 1, time.Second))
	require.NoError(t, c.Set(ctx, "product:123", 1, 0))

	clock.Advance(time.Minute)

	keys, err := c.Keys(ctx, "dailyintake:")
	require.NoError(t, err)
	assert.Equal(t, []string{"dailyintake:2026-01-01", "dailyintake:2026-01-02"}, keys)

	none, err := c.Keys(ctx, "recipe:")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryCache_Clear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute))
	}
	require.Equal(t, 5, c.Size())

	c.Clear()

	assert.Equal(t, 0, c.Size())
	_, err := c.Get(ctx, "k0")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	c := NewMemoryCache(time.Millisecond, zerolog.Nop())

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", id)
			assert.NoError(t, c.Set(ctx, key, id, time.Minute))
			_, err := c.Get(ctx, key)
			assert.NoError(t, err)
			_, err = c.Keys(ctx, "k")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, c.Size())
}
