// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"sync"

	"github.com/meshledger/scaleout/block"
)

// ChainView is a read-through overlay: a base Chain plus an ordered
// list of update blocks proposed by a proof. It answers GetBlock by
// consulting the updates first, falling back to the base chain, and
// memoizes whether the splice itself is valid.
type ChainView struct {
	base    *Chain
	updates []*block.Block

	validOnce sync.Once
	valid     bool
}

// NewChainView constructs a ChainView over base with the given updates.
// Non-empty updates must be contiguous and ascending to be valid; that
// is checked lazily by IsValid, not here.
func NewChainView(base *Chain, updates []*block.Block) *ChainView {
	return &ChainView{base: base, updates: updates}
}

// firstUpdateNumber and lastUpdateNumber are convenience accessors; zero
// value of updates means there are none.
func (v *ChainView) firstUpdateNumber() (uint32, bool) {
	if len(v.updates) == 0 {
		return 0, false
	}
	return v.updates[0].Number, true
}

// IsValid reports whether this ChainView's updates are a legal splice
// onto base, per the validity rules:
//  1. no updates -> valid.
//  2. the first update is either block 0 (full replacement, only legal
//     when base has no committed blocks) or is above base's committed
//     height and at most one past base's current tail.
//  3. updates are strictly ascending and contiguous.
//
// The result is computed once and memoized.
func (v *ChainView) IsValid() bool {
	v.validOnce.Do(func() {
		v.valid = v.computeValid()
	})
	return v.valid
}

func (v *ChainView) computeValid() bool {
	first, ok := v.firstUpdateNumber()
	if !ok {
		return true
	}

	for i := 1; i < len(v.updates); i++ {
		if v.updates[i].Number != v.updates[i-1].Number+1 {
			return false
		}
	}

	committedHeight := v.base.CommittedHeight()
	baseHeight := v.base.Height()

	if first == 0 {
		return committedHeight < 0
	}
	return int(first) <= baseHeight+1 && int(first) > committedHeight
}

// GetBlock returns the block at the given chain height, consulting the
// update list first.
func (v *ChainView) GetBlock(number uint32) (*block.Block, bool) {
	if first, ok := v.firstUpdateNumber(); ok && number >= first {
		idx := int(number - first)
		if idx < len(v.updates) {
			return v.updates[idx], true
		}
		return nil, false
	}
	return v.base.GetBlock(number)
}

// Height returns the highest block number reachable through this view.
func (v *ChainView) Height() int {
	if len(v.updates) > 0 {
		return int(v.updates[len(v.updates)-1].Number)
	}
	return v.base.Height()
}

// ForEach calls f with every block in this view in ascending number
// order, stopping early if f returns false. It is the iterator
// verifyChainWithTransaction walks.
func (v *ChainView) ForEach(f func(*block.Block) bool) {
	for n := 0; n <= v.Height(); n++ {
		b, ok := v.GetBlock(uint32(n))
		if !ok {
			continue
		}
		if !f(b) {
			return
		}
	}
}

// LightView is the read-only variant used during source relinking: no
// validity memo, just GetBlock falling through to base.
type LightView struct {
	base    *Chain
	updates []*block.Block
}

// NewLightView constructs a LightView over base with the given updates.
func NewLightView(base *Chain, updates []*block.Block) *LightView {
	return &LightView{base: base, updates: updates}
}

// GetBlock returns the block at the given chain height, consulting the
// update list first.
func (v *LightView) GetBlock(number uint32) (*block.Block, bool) {
	if len(v.updates) > 0 {
		first := v.updates[0].Number
		if number >= first {
			idx := int(number - first)
			if idx < len(v.updates) {
				return v.updates[idx], true
			}
			return nil, false
		}
	}
	if v.base == nil {
		return nil, false
	}
	return v.base.GetBlock(number)
}
