package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestGetOrFetchCachesUntilTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[[]string]().WithClock(clock.now)
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	_, hit, err := c.GetOrFetch(context.Background(), "products", 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.False(t, hit)

	clock.t = clock.t.Add(4 * time.Minute)
	_, hit, err = c.GetOrFetch(context.Background(), "products", 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)

	clock.t = clock.t.Add(time.Minute)
	_, hit, err = c.GetOrFetch(context.Background(), "products", 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New[int]()
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}
	v, _, _ := c.GetOrFetch(context.Background(), "k", time.Hour, fetch)
	assert.Equal(t, 1, v)
	c.Invalidate("k")
	v, hit, _ := c.GetOrFetch(context.Background(), "k", time.Hour, fetch)
	assert.False(t, hit)
	assert.Equal(t, 2, v)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c := New[int]()
	_, _, err := c.GetOrFetch(context.Background(), "k", time.Hour, func(context.Context) (int, error) {
		return 0, errors.New("down")
	})
	require.Error(t, err)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
