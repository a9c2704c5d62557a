// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package meta tracks what a node knows about other nodes' chains: for
// each node, the first block number it has not yet seen, and the last
// block number it has seen.
package meta

import "github.com/meshledger/scaleout/node"

// unknownSentinel is the lastKnown value meaning "nothing observed yet".
const unknownSentinel = int64(-1)

// Knowledge records, per node, the boundary of what has been observed of
// that node's chain. It is the bookkeeping a node keeps about its peers
// while applying proofs, not the chains themselves.
type Knowledge struct {
	firstUnknown map[node.ID]uint32
	lastKnown    map[node.ID]int64
}

// New returns an empty Knowledge.
func New() *Knowledge {
	return &Knowledge{
		firstUnknown: make(map[node.ID]uint32),
		lastKnown:    make(map[node.ID]int64),
	}
}

// FirstUnknownBlockNumber returns the lowest block number of owner's
// chain this Knowledge has not yet observed. Absent any observation, that
// is block 0.
func (k *Knowledge) FirstUnknownBlockNumber(owner node.ID) uint32 {
	if n, ok := k.firstUnknown[owner]; ok {
		return n
	}
	return 0
}

// LastKnownBlockNumber returns the highest block number of owner's chain
// observed so far, and ok=false if nothing has been observed.
func (k *Knowledge) LastKnownBlockNumber(owner node.ID) (number uint32, ok bool) {
	v, present := k.lastKnown[owner]
	if !present || v == unknownSentinel {
		return 0, false
	}
	return uint32(v), true
}

// Update records that owner's chain has been observed up to and
// including highest. It is idempotent and monotonic: an update with a
// lower highest than already recorded is a no-op.
func (k *Knowledge) Update(owner node.ID, highest uint32) {
	if cur, ok := k.lastKnown[owner]; !ok || cur == unknownSentinel || int64(highest) > cur {
		k.lastKnown[owner] = int64(highest)
	}
	if cur, ok := k.firstUnknown[owner]; !ok || highest+1 > cur {
		k.firstUnknown[owner] = highest + 1
	}
}

// Merge folds other's observations into k, taking the higher watermark
// per node. Merge lets a worker pool accumulate per-goroutine Knowledge
// deltas and combine them without a shared lock held across verification,
// a pattern this package's FirstUnknownBlockNumber/Update alone cannot
// express.
func (k *Knowledge) Merge(other *Knowledge) {
	if other == nil {
		return
	}
	for owner, v := range other.lastKnown {
		if v == unknownSentinel {
			continue
		}
		k.Update(owner, uint32(v))
	}
}
