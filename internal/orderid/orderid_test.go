package orderid

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "ORD-202608-000001", Format("202608", 1))
	assert.Equal(t, "ORD-202612-000042", Format("202612", 42))
	// Counters past six digits widen instead of wrapping.
	assert.Equal(t, "ORD-202608-1000000", Format("202608", 1000000))
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (c *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	if c.counts == nil {
		c.counts = make(map[string]int64)
	}
	c.counts[key]++
	return c.counts[key], nil
}

func TestCounterGenerator_StrictlyIncreasing(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g := &CounterGenerator{counter: &fakeCounter{}, env: "production", now: func() time.Time { return fixed }}

	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 100; i++ {
		id, err := g.Next(context.Background())
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^ORD-202608-\d{6}$`), id)
		assert.False(t, seen[id], "id %s issued twice", id)
		seen[id] = true

		// Zero-padded fixed-width ids sort lexicographically in issue order.
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, "ORD-202608-000100", prev)
}

func TestCounterGenerator_ScopeKey(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{}
	g := &CounterGenerator{counter: counter, env: "production", now: func() time.Time { return fixed }}

	_, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Contains(t, counter.counts, "orders:counter:production:202608")

	// A new month starts its own counter from one.
	g.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }
	id, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-202609-000001", id)
	assert.Contains(t, counter.counts, "orders:counter:production:202609")

	// Environments never share a scope.
	staging := &CounterGenerator{counter: counter, env: "stage", now: func() time.Time { return fixed }}
	id, err = staging.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-202608-000001", id)
}

func TestCounterGenerator_IncrFailure(t *testing.T) {
	g := &CounterGenerator{
		counter: &fakeCounter{err: errors.New("connection refused")},
		env:     "production",
		now:     time.Now,
	}

	_, err := g.Next(context.Background())
	assert.ErrorContains(t, err, "increment order counter")
}

func TestTimestampGenerator(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g := &TimestampGenerator{now: func() time.Time { return fixed }}

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+$`), id)
	assert.Equal(t, "ORD-1788091200000", id)
}
