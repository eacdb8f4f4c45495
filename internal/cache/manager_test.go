package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNormalization(t *testing.T) {
	a := Key("tasks:list", map[string]string{"priority": "4", "label": "work"})
	b := Key("tasks:list", map[string]string{"label": "work", "priority": "4"})
	assert.Equal(t, a, b, "parameter order must not split the cache")

	assert.Equal(t, "tasks:list", Key("tasks:list", nil))
	assert.Equal(t, "tasks:list", Key("tasks:list", map[string]string{"label": ""}),
		"empty values are dropped")

	withLabel := Key("tasks:list", map[string]string{"label": "work"})
	withoutLabel := Key("tasks:list", nil)
	assert.NotEqual(t, withLabel, withoutLabel)
}

func TestManagerHitMissExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.SetClock(func() time.Time { return now })
	m := NewManager(store, 60*time.Second, nil)

	var got []string
	require.False(t, m.GetJSON(ctx, "tasks:list", &got), "empty cache must miss")

	m.SetJSON(ctx, "tasks:list", []string{"a", "b"})
	require.True(t, m.GetJSON(ctx, "tasks:list", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	// One second before the deadline the entry is still live.
	now = now.Add(59 * time.Second)
	require.True(t, m.GetJSON(ctx, "tasks:list", &got))

	now = now.Add(2 * time.Second)
	require.False(t, m.GetJSON(ctx, "tasks:list", &got), "entry past its TTL must miss")

	stats := m.Stats(ctx)
	assert.Equal(t, 0, stats.Entries, "expired entry is evicted on read")
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestManagerInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Minute, nil)

	m.SetJSON(ctx, "tasks:list?limit=50", 1)
	m.SetJSON(ctx, "tasks:list?limit=10", 2)
	m.SetJSON(ctx, "projects:list", 3)

	m.InvalidatePrefix(ctx, "tasks:")

	var v int
	assert.False(t, m.GetJSON(ctx, "tasks:list?limit=50", &v))
	assert.False(t, m.GetJSON(ctx, "tasks:list?limit=10", &v))
	assert.True(t, m.GetJSON(ctx, "projects:list", &v), "other prefixes survive")
	assert.Equal(t, 3, v)
}

func TestManagerDefaultTTL(t *testing.T) {
	m := NewManager(nil, 0, nil)
	assert.Equal(t, DefaultTTL, m.TTL())
}

// failingStore simulates an unreachable backend (e.g. Redis down).
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}
func (failingStore) DeletePrefix(context.Context, string) error {
	return errors.New("connection refused")
}
func (failingStore) Len(context.Context) (int, error) {
	return 0, errors.New("connection refused")
}

func TestManagerDegradesOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	m := NewManager(failingStore{}, time.Minute, nil)

	// Every operation must complete without panicking or returning errors
	// to the caller; reads behave as misses.
	m.SetJSON(ctx, "tasks:list", []string{"a"})

	var got []string
	assert.False(t, m.GetJSON(ctx, "tasks:list", &got))

	m.InvalidatePrefix(ctx, "tasks:")

	stats := m.Stats(ctx)
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestManagerUndecodableEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "tasks:list", []byte("{not json"), time.Minute))

	m := NewManager(store, time.Minute, nil)
	var got []string
	assert.False(t, m.GetJSON(ctx, "tasks:list", &got))
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	buf := []byte(`"x"`)
	require.NoError(t, store.Set(ctx, "k", buf, time.Minute))
	buf[1] = 'y'

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`"x"`), got, "store must not alias caller buffers")
}
