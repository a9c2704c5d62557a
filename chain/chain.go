// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain holds the append-only local chain a node maintains for
// itself, and the ChainView/LightView overlays proof decode and
// verification read updates through.
package chain

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/cache"
	"github.com/meshledger/scaleout/co"
	"github.com/meshledger/scaleout/log"
	"github.com/meshledger/scaleout/mainchain"
	"github.com/meshledger/scaleout/node"
)

// ErrBadUpdate is returned by Update when the given blocks do not chain
// onto the current tail, or belong to the wrong owner.
var ErrBadUpdate = errors.New("chain: update does not chain onto the current tail")

// errBlockMiss is the loader sentinel cache.LRU.GetOrLoad sees on a
// genuine miss; it never escapes GetBlock.
var errBlockMiss = errors.New("chain: block not present")

// blockCacheSize bounds how many raw blocks GetBlock keeps warm per
// chain; committed blocks below the tail are the ones repeatedly
// re-read by concurrent ChainView/LightView construction during proof
// verification fan-out.
const blockCacheSize = 256

// Chain is the owner's own local, append-only chain. Its prefix up to
// CommittedHeight is immutable; Update is the sole writer and may only
// extend or replace the uncommitted suffix.
type Chain struct {
	owner node.ID

	mu              sync.RWMutex
	blocks          []*block.Block // indexed by Number
	committedHeight int            // -1 until RefreshCommitted observes a commit

	tick co.Signal

	// raw caches *block.Block by Number: blocks is the source of truth,
	// raw just keeps repeated GetBlock lookups (e.g. concurrent
	// ChainView reads during proof verification fan-out) from
	// reacquiring the RWMutex.
	raw *cache.LRU
}

// New creates an empty Chain for owner. Callers seal in the genesis block
// via Update, as with any other block.
func New(owner node.ID) *Chain {
	return &Chain{
		owner:           owner,
		committedHeight: -1,
		raw:             cache.NewLRU("chain.raw", blockCacheSize),
	}
}

// Owner returns the node this chain belongs to.
func (c *Chain) Owner() node.ID {
	return c.owner
}

// Height returns the number of the highest block present, or -1 if the
// chain is empty.
func (c *Chain) Height() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks) - 1
}

// CommittedHeight returns the highest block number known to be committed
// on the main chain, or -1 if none is.
func (c *Chain) CommittedHeight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.committedHeight
}

// GetBlock returns the block at the given number, if present.
func (c *Chain) GetBlock(number uint32) (*block.Block, bool) {
	v, err := c.raw.GetOrLoad(number, func(key interface{}) (interface{}, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		n := key.(uint32)
		if int(n) >= len(c.blocks) || c.blocks[n] == nil {
			return nil, errBlockMiss
		}
		return c.blocks[n], nil
	})
	if err != nil {
		return nil, false
	}
	return v.(*block.Block), true
}

// NewTicker returns a Waiter woken whenever Update succeeds, so
// subscribers can react to a new best block without polling.
func (c *Chain) NewTicker() co.Waiter {
	return c.tick.NewWaiter()
}

// Update is the sole writer to the chain. It validates that updates
// chains onto the current tail (by number, contiguously, and only
// replacing the uncommitted suffix) before splicing them in; on any
// validation failure the chain is left untouched.
//
// localStore rides along for callers that resolve cross-chain
// references during an update; this implementation does not need it,
// since block back-pointers have already been resolved by proof decode
// before Update is ever called.
func (c *Chain) Update(updates []*block.Block, _ node.LocalStore) error {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		if u.Owner != c.owner {
			return errors.WithMessagef(ErrBadUpdate, "block %d belongs to owner %d, chain owner is %d", u.Number, u.Owner, c.owner)
		}
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Number != updates[i-1].Number+1 {
			return errors.WithMessagef(ErrBadUpdate, "updates not contiguous at %d", updates[i].Number)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	first := updates[0].Number
	if int(first) > len(c.blocks) {
		return errors.WithMessagef(ErrBadUpdate, "update starts at %d, chain tail is at %d", first, len(c.blocks)-1)
	}
	if int(first) <= c.committedHeight {
		return errors.WithMessagef(ErrBadUpdate, "update at %d would rewrite committed block %d", first, c.committedHeight)
	}

	oldTail := len(c.blocks) - 1
	c.blocks = append(c.blocks[:first], updates...)
	// Purge every number the splice may have changed, including old
	// tail blocks a shorter replacement just cut off.
	for n := int(first); n <= oldTail; n++ {
		c.raw.Remove(uint32(n))
	}
	for _, u := range updates {
		c.raw.Remove(u.Number)
	}
	c.tick.Broadcast()
	log.Debug("chain updated", "owner", c.owner, "from", first, "to", updates[len(updates)-1].Number)
	return nil
}

// RefreshCommitted advances committedHeight by asking the oracle about
// every block above the current committed height, stopping at the first
// gap. It is housekeeping, not part of any invariant the proof core
// itself depends on: proof verification consults mc directly per block.
func (c *Chain) RefreshCommitted(mc mainchain.MainChain) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for h := c.committedHeight + 1; h < len(c.blocks); h++ {
		if !mc.IsPresentBlock(c.owner, uint32(h)) {
			break
		}
		c.committedHeight = h
	}
}
