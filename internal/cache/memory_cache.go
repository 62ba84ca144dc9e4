package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/epeers/stockalert/internal/models"
)

// MemoryCache provides an in-memory cache of normalized series keyed by
// symbol and timeframe. Entries expire after the configured TTL.
type MemoryCache struct {
	series map[string]seriesEntry
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
}

type seriesEntry struct {
	data      *models.QuoteSeries
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		series: make(map[string]seriesEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func seriesCacheKey(symbol string, tf models.Timeframe) string {
	return strings.ToUpper(symbol) + "|" + string(tf)
}

// GetSeries retrieves a cached series if fresh
func (c *MemoryCache) GetSeries(symbol string, tf models.Timeframe) (*models.QuoteSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.series[seriesCacheKey(symbol, tf)]
	if !exists {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.data, true
}

// SetSeries caches a series
func (c *MemoryCache) SetSeries(symbol string, tf models.Timeframe, data *models.QuoteSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.series[seriesCacheKey(symbol, tf)] = seriesEntry{
		data:      data,
		fetchedAt: c.now(),
	}
}

// Invalidate removes every timeframe cached for symbol
func (c *MemoryCache) Invalidate(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := strings.ToUpper(symbol) + "|"
	for key := range c.series {
		if strings.HasPrefix(key, prefix) {
			delete(c.series, key)
		}
	}
}

// Prune drops expired entries and returns how many were removed.
func (c *MemoryCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for key, entry := range c.series {
		if now.Sub(entry.fetchedAt) > c.ttl {
			delete(c.series, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, fresh or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.series)
}
