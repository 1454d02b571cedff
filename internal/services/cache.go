package services

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codebox_resolve_cache_hits_total",
		Help: "Resolve lookups answered from the in-process cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codebox_resolve_cache_misses_total",
		Help: "Resolve lookups that went to the store.",
	})
)

// ResolveCache keeps positive resolve results for a short TTL. Mutations that
// retire a code must invalidate it. A nil *ResolveCache is a disabled cache.
//
// Every invalidation bumps a generation counter. A view read from the store
// is only added if no invalidation happened since the read started, so a
// lookup racing a delete cannot put the deleted view back.
type ResolveCache struct {
	mu  sync.Mutex
	gen uint64
	lru *expirable.LRU[string, *ResolvedView]
}

// NewResolveCache returns nil when size is not positive.
func NewResolveCache(size int, ttl time.Duration) *ResolveCache {
	if size <= 0 {
		return nil
	}
	return &ResolveCache{lru: expirable.NewLRU[string, *ResolvedView](size, nil, ttl)}
}

func (c *ResolveCache) Get(code string) (*ResolvedView, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(code)
	if !ok {
		cacheMissesTotal.Inc()
		return nil, false
	}
	cacheHitsTotal.Inc()
	return v.clone(), true
}

// Generation is taken before a store read and handed back to Set.
func (c *ResolveCache) Generation() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set adds v unless an invalidation happened after gen was taken. It reports
// whether v was cached.
func (c *ResolveCache) Set(code string, v *ResolvedView, gen uint64) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.lru.Add(code, v.clone())
	return true
}

func (c *ResolveCache) Invalidate(codes ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, code := range codes {
		c.lru.Remove(code)
	}
}

// InvalidateContainer drops every masked view that points into the named container.
func (c *ResolveCache) InvalidateContainer(name string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, code := range c.lru.Keys() {
		if v, ok := c.lru.Peek(code); ok && v.container == name {
			c.lru.Remove(code)
		}
	}
}

func (c *ResolveCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
