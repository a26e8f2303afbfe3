// Package insight produces the four natural-language analytics artifacts
// (summary, trends, recommendations, jurisdiction scorecards) from
// aggregate report statistics, memoizing each for a short window.
package insight

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/TahPapeJe/PotSoft/metrics"
)

// DefaultTTL is how long a computed insight stays fresh.
const DefaultTTL = 5 * time.Minute

// Kind identifies one independently cached analysis.
type Kind string

const (
	KindSummary         Kind = "summary"
	KindTrends          Kind = "trends"
	KindRecommendations Kind = "recommendations"
	KindJurisdictions   Kind = "jurisdictions"
)

// Result is a decoded insight payload.
type Result map[string]interface{}

// Cache memoizes insight results per kind. Computation is serialized per
// kind so a stale entry is not recomputed twice by concurrent readers;
// reads of different kinds never block each other.
type Cache struct {
	entries *gocache.Cache

	mu    sync.Mutex
	locks map[Kind]*sync.Mutex
}

// NewCache - return a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: gocache.New(ttl, ttl),
		locks:   make(map[Kind]*sync.Mutex),
	}
}

func (c *Cache) lockFor(kind Kind) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[kind]
	if !ok {
		l = &sync.Mutex{}
		c.locks[kind] = l
	}
	return l
}

// GetOrCompute returns the cached value for kind, or runs compute, stores
// its result with a fresh timestamp, and returns it. Compute errors are not
// cached.
func (c *Cache) GetOrCompute(kind Kind, compute func() (Result, error)) (Result, error) {
	l := c.lockFor(kind)
	l.Lock()
	defer l.Unlock()

	if v, ok := c.entries.Get(string(kind)); ok {
		metrics.InsightCacheHitsTotal.WithLabelValues(string(kind)).Inc()
		return v.(Result), nil
	}

	metrics.InsightCacheMissesTotal.WithLabelValues(string(kind)).Inc()
	result, err := compute()
	if err != nil {
		return nil, err
	}

	c.entries.SetDefault(string(kind), result)
	return result, nil
}

// InvalidateAll drops every cached entry immediately, regardless of age.
func (c *Cache) InvalidateAll() {
	c.entries.Flush()
}
