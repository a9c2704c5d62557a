// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache wraps hashicorp/golang-lru with the GetOrLoad pattern
// chain.Chain builds its bounded block caches around, each reporting its hit/miss ratio to the metrics package under its
// own name so /admin/stats and /metrics can tell a cold cache from a
// warm one per owner chain.
package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/meshledger/scaleout/metrics"
)

var cacheHits = metrics.LazyLoadCounterVec("cache_accesses", []string{"cache", "outcome"})

// LRU is an LRU cache extending golang-lru with named hit/miss
// counters.
type LRU struct {
	*lru.Cache
	name string
}

// NewLRU creates a named LRU cache instance with at least 16 entries
// of headroom. name identifies this cache in the "cache_accesses"
// metric's "cache" label, e.g. "chain.raw" for a Chain's raw block
// cache.
func NewLRU(name string, maxSize int) *LRU {
	if maxSize < 16 {
		maxSize = 16
	}
	c, _ := lru.New(maxSize)
	return &LRU{Cache: c, name: name}
}

// Loader loads the value for a cache miss.
type Loader func(key interface{}) (interface{}, error)

// GetOrLoad first tries the cache, falling back to loader on a miss and
// populating the cache with the loaded value; a load error is returned
// and nothing is cached. Every call records a hit or miss against this
// LRU's name.
func (l *LRU) GetOrLoad(key interface{}, loader Loader) (interface{}, error) {
	if v, ok := l.Get(key); ok {
		cacheHits().AddWithLabel(1, map[string]string{"cache": l.name, "outcome": "hit"})
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		cacheHits().AddWithLabel(1, map[string]string{"cache": l.name, "outcome": "miss"})
		return nil, err
	}
	l.Add(key, v)
	cacheHits().AddWithLabel(1, map[string]string{"cache": l.name, "outcome": "miss"})
	return v, nil
}
