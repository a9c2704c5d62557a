// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/log"
	"github.com/meshledger/scaleout/mainchain"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

// Verify is the entry point: it requires the transaction actually
// being proven to carry a sender - a transaction transmitted as the
// subject of a Proof must be attributed to someone, unlike a source
// reached recursively, which may bottom out at a genesis transaction -
// then delegates to the recursive algorithm. A successful Verify marks
// Transaction, and every source it transitively depends on, as
// LocallyVerified.
func (p *Proof) Verify(ls LocalStore) error {
	if p.Transaction == nil {
		return errors.New("proof: no transaction to verify")
	}
	if p.Transaction.Sender == nil {
		return errors.WithStack(ErrBadGenesis)
	}
	err := p.VerifyTransaction(p.Transaction, ls)
	if err != nil {
		Stats.failures(KindOf(err)).Add(1)
		log.Warn("proof verification failed", "tx", p.Transaction, "err", err)
		return err
	}
	log.Debug("proof verified", "tx", p.Transaction, "chains", len(p.ChainUpdates))
	return nil
}

// VerifyTransaction runs the recursive algorithm on t directly, without
// Verify's top-level "must have a sender" gate. It is exported so a
// genesis transaction - which only ever appears as a source in
// practice - can still be exercised against its own ChainView in
// isolation.
func (p *Proof) VerifyTransaction(t *tx.Transaction, ls LocalStore) error {
	return p.verifyTransaction(t, ls, &sync.Map{})
}

// verifyTransaction is the recursive post-order DAG walk: it bottoms
// out either at a genesis transaction or at locallyVerified already
// being set (memoization, which also cuts off re-verification of a
// source shared by more than one branch). visiting guards against
// source cycles the protocol assumes cannot exist but a Byzantine
// sender could still construct; a transaction already on the current
// walk's stack fails closed with ErrSourceCycle rather than recursing
// forever.
func (p *Proof) verifyTransaction(t *tx.Transaction, ls LocalStore, visiting *sync.Map) error {
	if t.LocallyVerified() {
		return nil
	}
	if _, loaded := visiting.LoadOrStore(t, struct{}{}); loaded {
		return errors.WithStack(ErrSourceCycle)
	}
	defer visiting.Delete(t)

	if t.BlockNumber == nil {
		return errors.WithStack(ErrMissingBlockNumber)
	}

	if t.Sender == nil {
		if err := p.verifyGenesisTransaction(t, ls); err != nil {
			return err
		}
		t.MarkVerified()
		return nil
	}

	if err := p.verifyChainWithTransaction(t, ls, *t.BlockNumber); err != nil {
		return err
	}
	if err := p.verifySourceTransactions(t, ls, visiting); err != nil {
		return err
	}
	t.MarkVerified()
	return nil
}

// verifySourceTransactions verifies every source of t concurrently.
// This fan-out is why getChainView and the locallyVerified flag must
// both be safe under concurrent access: goroutines verifying sibling
// sources share the Proof. The first source to fail aborts the group;
// its error is wrapped in a SourceError identifying which source broke.
func (p *Proof) verifySourceTransactions(t *tx.Transaction, ls LocalStore, visiting *sync.Map) error {
	if len(t.Source) == 0 {
		return nil
	}
	var g errgroup.Group
	for _, src := range t.Source {
		src := src
		g.Go(func() error {
			if err := p.verifyTransaction(src, ls, visiting); err != nil {
				return &SourceError{Source: src, Err: err}
			}
			Stats.sourcesVerified().Add(1)
			return nil
		})
	}
	return g.Wait()
}

// verifyChainWithTransaction validates t against the owning node's
// ChainView: the view must be a legal splice, t must appear in
// exactly one of its blocks, and some block at or after t's own must be
// committed on the main chain - directly (isOnMainChain) or because a
// later block of the same owner is (nextCommittedBlock).
func (p *Proof) verifyChainWithTransaction(t *tx.Transaction, ls LocalStore, bn uint32) error {
	cv, err := p.getChainView(ls, *t.Sender)
	if err != nil {
		return err
	}
	if !cv.IsValid() {
		return errors.WithStack(ErrInvalidChainView)
	}

	committedAtOrAfter := committedSuffix(*t.Sender, cv.Height(), ls.MainChain())

	seen := false
	anchored := false
	var walkErr error
	cv.ForEach(func(b *block.Block) bool {
		if b.Contains(t) {
			if seen {
				walkErr = errors.WithStack(ErrDuplicateTransaction)
				return false
			}
			seen = true
		}
		if !anchored && b.Number >= bn && committedAtOrAfter[b.Number] {
			anchored = true
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	if !seen {
		return errors.WithStack(ErrTransactionNotFound)
	}
	if !anchored {
		return errors.WithStack(ErrNoCommittedAnchor)
	}
	return nil
}

// committedSuffix precomputes, for every block number reachable through
// cv, whether that block or any higher-numbered block of the same owner
// is committed on the main chain, folded into one backward pass so
// verifyChainWithTransaction's walk stays linear instead of re-scanning
// forward per block for the next committed block.
func committedSuffix(owner node.ID, height int, mc mainchain.MainChain) map[uint32]bool {
	out := make(map[uint32]bool)
	if height < 0 {
		return out
	}
	found := false
	for n := height; n >= 0; n-- {
		if mc.IsPresentBlock(owner, uint32(n)) {
			found = true
		}
		out[uint32(n)] = found
	}
	return out
}

// verifyGenesisTransaction validates a genesis transaction: it
// must be sealed at block 0, receiver's own ChainView must have a valid
// block 0, and that block must be committed.
func (p *Proof) verifyGenesisTransaction(t *tx.Transaction, ls LocalStore) error {
	if t.BlockNumber == nil || *t.BlockNumber != 0 {
		return errors.WithStack(ErrBadGenesis)
	}
	cv, err := p.getChainView(ls, t.Receiver)
	if err != nil {
		return err
	}
	if !cv.IsValid() {
		return errors.WithStack(ErrInvalidChainView)
	}
	genesis, ok := cv.GetBlock(0)
	if !ok {
		return errors.WithStack(ErrMissingGenesisBlock)
	}
	if !ls.MainChain().IsPresentBlock(genesis.Owner, genesis.Number) {
		return errors.WithStack(ErrGenesisNotCommitted)
	}
	return nil
}
