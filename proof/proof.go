// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package proof implements the proof bundle: the algorithm for deciding
// which chains must ride along with a transaction (closure
// construction), the wire encoding and decode/relink passes, and
// recursive verification against committed main-chain anchors.
package proof

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/chain"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

// Proof carries the transaction being proven plus the per-owner block
// updates needed to verify it and its transitive sources. It is built
// up by one goroutine (construction, or the decode passes), then handed
// off: Verify and getChainView may subsequently be called concurrently
// by a fan-out of source verifications, which is why the ChainView memo
// below is guarded.
type Proof struct {
	Transaction  *tx.Transaction
	ChainUpdates map[node.ID][]*block.Block

	mu         sync.Mutex
	chainViews map[node.ID]*chain.ChainView
	group      singleflight.Group
}

// New creates an empty Proof for the given transaction. transaction may
// be nil when New is used as scratch space by Decode, which fills it in
// once the proven transaction has been located.
func New(transaction *tx.Transaction) *Proof {
	return &Proof{
		Transaction:  transaction,
		ChainUpdates: make(map[node.ID][]*block.Block),
		chainViews:   make(map[node.ID]*chain.ChainView),
	}
}

// AddBlock appends b to owner's update list. Blocks must be added in
// ascending number order per owner; callers building a Proof by walking
// a local chain forward naturally satisfy this.
func (p *Proof) AddBlock(owner node.ID, b *block.Block) {
	p.ChainUpdates[owner] = append(p.ChainUpdates[owner], b)
}

// getChainView returns the memoized ChainView for owner, building it
// against ls on first request. Concurrent callers requesting the same
// owner's view block on one another rather than racing to build
// duplicate views: the fast path re-checks the memo after acquiring the
// singleflight slot, so only the first caller for a given owner ever
// actually constructs a ChainView.
func (p *Proof) getChainView(ls LocalStore, owner node.ID) (*chain.ChainView, error) {
	p.mu.Lock()
	if v, ok := p.chainViews[owner]; ok {
		p.mu.Unlock()
		return v, nil
	}
	p.mu.Unlock()

	key := fmt.Sprintf("%d", owner)
	v, err, _ := p.group.Do(key, func() (any, error) {
		p.mu.Lock()
		if v, ok := p.chainViews[owner]; ok {
			p.mu.Unlock()
			return v, nil
		}
		p.mu.Unlock()

		base, err := ls.GetChain(owner)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve base chain for node %d", owner)
		}
		cv := chain.NewChainView(base, p.ChainUpdates[owner])
		cv.IsValid() // building a view computes validity eagerly

		p.mu.Lock()
		p.chainViews[owner] = cv
		p.mu.Unlock()
		return cv, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*chain.ChainView), nil
}

// ApplyUpdates applies every chain update in the proof to its target
// chain, then bumps mk's watermark for each owner included. It must
// only be called after Verify has succeeded: a failed verification must
// leave local state, including meta-knowledge, untouched.
func (p *Proof) ApplyUpdates(ls LocalStore, mk MetaKnowledge) error {
	for owner, updates := range p.ChainUpdates {
		if len(updates) == 0 {
			continue
		}
		c, err := ls.GetChain(owner)
		if err != nil {
			return errors.Wrapf(err, "resolve chain for node %d to apply updates", owner)
		}
		if err := c.Update(updates, ls); err != nil {
			return errors.Wrapf(err, "apply updates to node %d's chain", owner)
		}
		mk.Update(owner, updates[len(updates)-1].Number)
	}
	return nil
}

// MetaKnowledge is the subset of meta.Knowledge's API ApplyUpdates
// needs, kept narrow so proof does not otherwise depend on how a
// caller's knowledge table is represented.
type MetaKnowledge interface {
	Update(owner node.ID, highest uint32)
}
