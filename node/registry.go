// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

const resolvedCacheLimit = 4096

// Registry is an in-memory LocalStore. It holds nodes registered up front
// (the common case in tests and in the deterministic mock network) and,
// when given a Tracker, falls through to it for ids it doesn't know yet,
// caching the result the way chain.Chain caches loaded blocks.
type Registry struct {
	mu      sync.RWMutex
	nodes   map[ID]*Node
	tracker Tracker
	cache   *lru.Cache
}

// NewRegistry creates a Registry. tracker may be nil, in which case
// GetNode only ever resolves statically registered nodes.
func NewRegistry(tracker Tracker) *Registry {
	cache, _ := lru.New(resolvedCacheLimit)
	return &Registry{
		nodes:   make(map[ID]*Node),
		tracker: tracker,
		cache:   cache,
	}
}

// Register adds n to the registry, making it resolvable by GetNode without
// touching the tracker.
func (r *Registry) Register(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[n.ID()] = n
}

// GetNode implements LocalStore.
func (r *Registry) GetNode(id ID) (*Node, error) {
	r.mu.RLock()
	if n, ok := r.nodes[id]; ok {
		r.mu.RUnlock()
		return n, nil
	}
	r.mu.RUnlock()

	if cached, ok := r.cache.Get(id); ok {
		return cached.(*Node), nil
	}

	if r.tracker == nil {
		return nil, ErrUnknownNode
	}
	n, err := r.tracker.Resolve(id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, n)
	return n, nil
}
