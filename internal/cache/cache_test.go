package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/events"
)

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a") // a is now most recently used
	require.True(t, ok)

	c.Set("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry is evicted")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRUExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU[string](4, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	now = now.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entries are dropped on read")
}

func TestLRUOverwriteAndPurge(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("a", 2)
	v, _ := c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func monthly(person string) calculator.Request {
	return calculator.Request{Cycle: cycle.New(1, cycle.Month), PersonID: person}
}

func TestSummaryCacheHitAndPurge(t *testing.T) {
	c := NewSummaryCache(8, time.Minute, nil)
	calls := 0
	compute := func() (*calculator.Summary, error) {
		calls++
		return &calculator.Summary{TargetDays: 30}, nil
	}

	s1, hit, err := c.Get(monthly(""), compute)
	require.NoError(t, err)
	assert.False(t, hit)

	s2, hit, err := c.Get(monthly(""), compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, calls)

	_, hit, _ = c.Get(monthly("me"), compute)
	assert.False(t, hit, "person filter is part of the key")
	assert.Equal(t, 2, calls)

	require.NoError(t, c.Publish(context.Background(), events.Change{Op: events.OpUpdate}))
	assert.Equal(t, 0, c.Len())

	_, hit, _ = c.Get(monthly(""), compute)
	assert.False(t, hit)
	assert.Equal(t, 3, calls)
}

func TestSummaryCacheErrorsNotCached(t *testing.T) {
	c := NewSummaryCache(8, time.Minute, nil)
	boom := errors.New("boom")

	_, _, err := c.Get(monthly(""), func() (*calculator.Summary, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestSummaryCacheDropsResultComputedAcrossPurge(t *testing.T) {
	c := NewSummaryCache(8, time.Minute, nil)

	_, _, err := c.Get(monthly(""), func() (*calculator.Summary, error) {
		c.Purge() // a write lands while the summary is being built
		return &calculator.Summary{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestSummaryCacheSharesConcurrentMisses(t *testing.T) {
	c := NewSummaryCache(8, time.Minute, nil)
	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (*calculator.Summary, error) {
		calls.Add(1)
		<-release
		return &calculator.Summary{}, nil
	}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := c.Get(monthly(""), compute)
			assert.NoError(t, err)
		}()
	}

	// Let the goroutines pile up behind the first computation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(5))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Equal(t, 1, c.Len())
}

func TestNilSummaryCache(t *testing.T) {
	var c *SummaryCache
	s, hit, err := c.Get(monthly(""), func() (*calculator.Summary, error) {
		return &calculator.Summary{TargetDays: 7}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, s.TargetDays)
	assert.NotPanics(t, c.Purge)
}
