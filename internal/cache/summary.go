package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/events"
	"github.com/mmynk/budgetwise/internal/metrics"
)

var _ events.Publisher = (*SummaryCache)(nil)

// SummaryCache memoizes summaries per (cycle, person) until the next store
// change. Concurrent misses for the same request share one computation.
//
// A nil *SummaryCache is valid and always computes.
type SummaryCache struct {
	entries *LRU[*calculator.Summary]
	group   singleflight.Group
	metrics *metrics.Metrics

	// generation is bumped by every purge; a computation only stores its
	// result if no purge happened while it ran.
	mu         sync.Mutex
	generation uint64
}

// NewSummaryCache returns a cache of size entries that expire after ttl.
// m may be nil.
func NewSummaryCache(size int, ttl time.Duration, m *metrics.Metrics) *SummaryCache {
	return &SummaryCache{
		entries: NewLRU[*calculator.Summary](size, ttl),
		metrics: m,
	}
}

// Get returns the summary for req, calling compute on a miss. hit reports
// whether the result came from the cache. Errors are never cached.
// Returned summaries are shared and must not be modified.
func (c *SummaryCache) Get(req calculator.Request, compute func() (*calculator.Summary, error)) (s *calculator.Summary, hit bool, err error) {
	if c == nil {
		s, err = compute()
		return s, false, err
	}

	key := requestKey(req)
	if s, ok := c.entries.Get(key); ok {
		c.metrics.CacheLookup(true)
		return s, true, nil
	}
	c.metrics.CacheLookup(false)

	gen := c.currentGeneration()
	v, err, _ := c.group.Do(fmt.Sprintf("%d/%s", gen, key), func() (any, error) {
		s, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation == gen {
			c.entries.Set(key, s)
		}
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*calculator.Summary), false, nil
}

// Purge drops every cached summary.
func (c *SummaryCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries.Purge()
}

// Publish purges the cache on any store change.
func (c *SummaryCache) Publish(_ context.Context, _ events.Change) error {
	c.Purge()
	return nil
}

// Len returns the number of cached summaries.
func (c *SummaryCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func (c *SummaryCache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func requestKey(req calculator.Request) string {
	return fmt.Sprintf("%d|%s|%s", req.Cycle.Count, req.Cycle.Unit, req.PersonID)
}
