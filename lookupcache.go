package idw

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "idw_lookup_cache_hits_total",
		Help: "The total number of hits on the gradient lookup cache",
	})
	lookupCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "idw_lookup_cache_misses_total",
		Help: "The total number of misses on the gradient lookup cache",
	})
	lookupCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "idw_lookup_cache_evictions_total",
		Help: "The total number of evictions from the gradient lookup cache",
	})
)

// A LookupCache caches built gradient lookup tables keyed by their normalized
// stops, so repeated identical gradients skip the table build. Lookups are
// immutable, so cached tables are shared across requests.
type LookupCache struct {
	mutex sync.Mutex
	cache *lru.Cache[string, *Lookup]
}

// NewLookupCache returns a new LookupCache holding at most size tables.
func NewLookupCache(size int) (*LookupCache, error) {
	cache, err := lru.New[string, *Lookup](size)
	if err != nil {
		return nil, err
	}
	return &LookupCache{
		cache: cache,
	}, nil
}

// Lookup returns the lookup table for stops, building and caching it on first
// use.
func (c *LookupCache) Lookup(stops []Stop) (*Lookup, error) {
	normalized, err := normalizeStops(stops)
	if err != nil {
		return nil, err
	}
	key := lookupKey(normalized)

	if lookup, ok := c.cache.Get(key); ok {
		lookupCacheHits.Inc()
		return lookup, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if lookup, ok := c.cache.Get(key); ok {
		lookupCacheHits.Inc()
		return lookup, nil
	}

	lookupCacheMisses.Inc()

	lookup := newLookup(normalized)
	if eviction := c.cache.Add(key, lookup); eviction {
		lookupCacheEvictions.Inc()
	}

	return lookup, nil
}

// lookupKey returns the cache key for normalized stops.
func lookupKey(stops []Stop) string {
	var sb strings.Builder
	for _, stop := range stops {
		fmt.Fprintf(&sb, "%v:%02x%02x%02x;", stop.Position, stop.Color.R, stop.Color.G, stop.Color.B)
	}
	return sb.String()
}
