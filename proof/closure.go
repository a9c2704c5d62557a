// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"github.com/meshledger/scaleout/meta"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

// closureWalk is the recursive pre-order walk both appendChains and
// appendChains2 are built from: they differ only in the cutoff
// predicate (prune) and what happens at each surviving node (visit).
// Per-source recursion stops the moment prune or visit says so.
func closureWalk(t *tx.Transaction, receiver node.ID, prune func(owner node.ID, bn uint32) bool, visit func(owner node.ID, bn uint32) bool) {
	if t == nil || t.Sender == nil {
		return
	}
	owner := *t.Sender
	if owner == receiver {
		return
	}
	if t.BlockNumber == nil {
		return
	}
	bn := *t.BlockNumber
	if prune(owner, bn) {
		return
	}
	if !visit(owner, bn) {
		return
	}
	for _, src := range t.Source {
		closureWalk(src, receiver, prune, visit)
	}
}

// AppendChains computes the set of chains whose update segments must
// ride along with t to reach receiver, given mk's record of what
// receiver already knows, saturating once nrOfNodes-1 distinct chains
// have been collected (every other node in the network has a chain; no
// proof can ever need more than that).
func AppendChains(nrOfNodes int, t *tx.Transaction, receiver node.ID, mk *meta.Knowledge, chains map[node.ID]struct{}) {
	closureWalk(t, receiver, func(owner node.ID, bn uint32) bool {
		return mk.FirstUnknownBlockNumber(owner) >= bn
	}, func(owner node.ID, _ uint32) bool {
		chains[owner] = struct{}{}
		return len(chains) < nrOfNodes-1
	})
}

// AppendChains2 is the parallel variant used by proof construction: it
// produces, per owner, the highest block number reachable through t's
// source DAG, using lastKnownBlockNumber as the cutoff and max-merging
// the bound per owner across multiple paths to the same chain.
func AppendChains2(t *tx.Transaction, receiver node.ID, mk *meta.Knowledge, highest map[node.ID]uint32) {
	closureWalk(t, receiver, func(owner node.ID, bn uint32) bool {
		last, ok := mk.LastKnownBlockNumber(owner)
		return ok && last >= bn
	}, func(owner node.ID, bn uint32) bool {
		if cur, exists := highest[owner]; !exists || bn > cur {
			highest[owner] = bn
		}
		return true
	})
}

// Build constructs a Proof for sending t to receiver: it computes the
// closure of chains t transitively depends on via AppendChains2, then
// slices each owner's local chain from mk's first-unknown watermark
// through the highest block number the closure reached.
func Build(t *tx.Transaction, receiver node.ID, mk *meta.Knowledge, ls LocalStore) (*Proof, error) {
	p := New(t)

	highest := make(map[node.ID]uint32)
	AppendChains2(t, receiver, mk, highest)

	for owner, hi := range highest {
		c, err := ls.GetChain(owner)
		if err != nil {
			return nil, err
		}
		from := mk.FirstUnknownBlockNumber(owner)
		bundled := 0
		for n := from; n <= hi; n++ {
			b, ok := c.GetBlock(n)
			if !ok {
				break
			}
			p.AddBlock(owner, b)
			bundled++
		}
		if bundled > 0 {
			Stats.chainsBundled().Add(1)
			Stats.blocksBundled().Add(int64(bundled))
		}
	}
	return p, nil
}
