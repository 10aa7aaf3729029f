// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MaxCachedLength is the longest raw string content, in symbols, that a
// Cache will hold. Longer strings are always decoded.
const MaxCachedLength = 256

// A Cache remembers the decoded form of recently-read strings that contained
// escapes, keyed by their raw content. It is safe for concurrent use, and may
// be shared by readers over different buffers and of either symbol width.
//
// A Cache only saves work; a miss always falls back to a full decode.
type Cache struct {
	lru    *lru.Cache[uint64, cacheEntry]
	hits   prometheus.Counter
	misses prometheus.Counter
}

type cacheEntry struct {
	raw  string // the raw content, to detect hash collisions
	text string // the decoded content
}

// NewCache constructs a Cache holding up to size entries. If reg != nil, the
// hit and miss counters of the cache are registered with it.
func NewCache(size int, reg prometheus.Registerer) (*Cache, error) {
	c, err := lru.New[uint64, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("new cache: %w", err)
	}
	return &Cache{
		lru: c,
		hits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "jcodec_unescape_cache_hits_total",
			Help: "Total number of decoded strings found in the unescape cache.",
		}),
		misses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "jcodec_unescape_cache_misses_total",
			Help: "Total number of escaped strings not found in the unescape cache.",
		}),
	}, nil
}

// Len reports the number of entries in c.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge discards all the entries in c.
func (c *Cache) Purge() { c.lru.Purge() }

// The key of an entry mixes the symbol width into the hash, so that UTF-8
// and UTF-16 content with the same bytes do not collide.
func cacheKey[S Symbol](cd codec[S], span []S) uint64 {
	h := cd.hash(span)
	var z S
	if _, ok := any(z).(uint16); ok {
		h = ^h
	}
	return h
}

func cacheLookup[S Symbol](c *Cache, cd codec[S], span []S) (string, bool) {
	if len(span) > MaxCachedLength {
		return "", false
	}
	e, ok := c.lru.Get(cacheKey(cd, span))
	if !ok || !cd.equal(span, e.raw) {
		c.misses.Inc()
		return "", false
	}
	c.hits.Inc()
	return e.text, true
}

func cacheStore[S Symbol](c *Cache, cd codec[S], span []S, text string) {
	if len(span) > MaxCachedLength {
		return
	}
	c.lru.Add(cacheKey(cd, span), cacheEntry{raw: cd.key(span), text: text})
}
