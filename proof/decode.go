// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/chain"
	"github.com/meshledger/scaleout/log"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

// Decode rebuilds a Proof from its RLP-encoded wire form. It runs both
// relinking passes before handing the Proof back: by the time Decode
// returns, every block's Previous pointer and every transaction's
// Source list is resolved, and the proven transaction itself has been
// located. No other goroutine may observe the Proof until Decode has
// returned.
func Decode(data []byte, ls LocalStore) (*Proof, error) {
	var msg Message
	if err := rlp.DecodeBytes(data, &msg); err != nil {
		return nil, errors.Wrap(err, "rlp decode proof")
	}
	return FromMessage(msg, ls)
}

// pendingSource pairs a freshly decoded transaction with the wire-level
// source refs Pass B still needs to resolve into *tx.Transaction
// pointers, since tx.FromMessage leaves Source empty by design.
type pendingSource struct {
	t    *tx.Transaction
	refs []tx.SourceRef
}

// FromMessage reconstructs a Proof from an already-decoded Message.
func FromMessage(msg Message, ls LocalStore) (*Proof, error) {
	p := New(nil)

	blocksByOwner := make(map[node.ID][]*block.Block, len(msg.ChainUpdates))
	var pending []pendingSource

	for _, ou := range msg.ChainUpdates {
		owner := node.ID(ou.Owner)
		blocks := make([]*block.Block, len(ou.Blocks))
		for i, bm := range ou.Blocks {
			b := &block.Block{
				Number:       bm.Number,
				Owner:        node.ID(bm.Owner),
				Transactions: make(tx.Transactions, len(bm.Transactions)),
			}
			for j, tm := range bm.Transactions {
				t := tx.FromMessage(tm, b.Number)
				b.Transactions[j] = t
				if len(tm.Source) > 0 {
					pending = append(pending, pendingSource{t: t, refs: tm.Source})
				}
			}
			blocks[i] = b
		}
		blocksByOwner[owner] = blocks
		p.ChainUpdates[owner] = blocks
	}

	if err := fixPreviousBlockPointers(blocksByOwner, ls); err != nil {
		return nil, err
	}

	lightViews := make(map[node.ID]*chain.LightView, len(blocksByOwner))
	for owner, blocks := range blocksByOwner {
		base, err := ls.GetChain(owner)
		if err != nil {
			return nil, errors.Wrapf(ErrDecodeIO, "resolve base chain for node %d: %v", owner, err)
		}
		lightViews[owner] = chain.NewLightView(base, blocks)
	}

	if err := relinkSources(pending, lightViews, ls); err != nil {
		return nil, err
	}

	owner := node.ID(msg.Transaction.Owner)
	cv, err := p.getChainView(ls, owner)
	if err != nil {
		return nil, errors.Wrapf(ErrDecodeIO, "resolve chain view for node %d: %v", owner, err)
	}
	if !cv.IsValid() {
		return nil, errors.WithStack(ErrInvalidChainView)
	}
	b, ok := cv.GetBlock(msg.Transaction.BlockNumber)
	if !ok {
		return nil, errors.Wrapf(ErrDecodeIO, "block %d not found for node %d", msg.Transaction.BlockNumber, owner)
	}
	proven, ok := b.GetTransaction(msg.Transaction.ID)
	if !ok {
		return nil, errors.Wrapf(ErrTransactionNotFound, "transaction %d in block %d of node %d", msg.Transaction.ID, msg.Transaction.BlockNumber, owner)
	}
	p.Transaction = proven

	log.Debug("decoded proof", "tx", proven, "chains", len(p.ChainUpdates))
	return p, nil
}

// fixPreviousBlockPointers is decode's Pass A: it walks each owner's
// update list in order, chaining each block's Previous to its
// predecessor in the list, then binds the first update's Previous to the
// locally-known block immediately below it - unless the first update is
// block 0, which by invariant never has a predecessor.
//
// A receiver that does not already hold that predecessor locally is a
// hard decode failure (ErrDecodeIO) rather than a fetch-on-miss:
// fetching would pull the socket transport into this core, and a
// well-behaved sender's meta-knowledge keeps it from happening anyway.
func fixPreviousBlockPointers(blocksByOwner map[node.ID][]*block.Block, ls LocalStore) error {
	for owner, updates := range blocksByOwner {
		if len(updates) == 0 {
			continue
		}
		for i := 1; i < len(updates); i++ {
			updates[i].Previous = updates[i-1]
		}
		first := updates[0]
		if first.Number == 0 {
			continue
		}
		base, err := ls.GetChain(owner)
		if err != nil {
			return errors.Wrapf(ErrDecodeIO, "resolve chain for node %d: %v", owner, err)
		}
		prev, ok := base.GetBlock(first.Number - 1)
		if !ok {
			return errors.Wrapf(ErrDecodeIO, "node %d: receiver does not hold predecessor block %d locally", owner, first.Number-1)
		}
		first.Previous = prev
	}
	return nil
}

// relinkSources is decode's Pass B: for every pending transaction in the
// bundle, resolve each of its wire-level SourceRef tuples to the actual
// Transaction it denotes, preferring the in-bundle LightView (the source
// rides along in this same proof) and falling back to the receiver's own
// local chain otherwise.
func relinkSources(pending []pendingSource, lightViews map[node.ID]*chain.LightView, ls LocalStore) error {
	for _, p := range pending {
		p.t.Source = make([]*tx.Transaction, 0, len(p.refs))
		for _, ref := range p.refs {
			src, err := resolveSource(ref, lightViews, ls)
			if err != nil {
				return err
			}
			p.t.Source = append(p.t.Source, src)
		}
	}
	return nil
}

func resolveSource(ref tx.SourceRef, lightViews map[node.ID]*chain.LightView, ls LocalStore) (*tx.Transaction, error) {
	owner := node.ID(ref.Owner)
	if lv, ok := lightViews[owner]; ok {
		if b, ok := lv.GetBlock(ref.BlockNumber); ok {
			if src, ok := b.GetTransaction(ref.ID); ok {
				return src, nil
			}
		}
	}
	c, err := ls.GetChain(owner)
	if err != nil {
		return nil, errors.Wrapf(ErrDecodeIO, "resolve chain for source owner %d: %v", owner, err)
	}
	b, ok := c.GetBlock(ref.BlockNumber)
	if !ok {
		return nil, errors.Wrapf(ErrDecodeIO, "source block %d not found for node %d", ref.BlockNumber, owner)
	}
	src, ok := b.GetTransaction(ref.ID)
	if !ok {
		return nil, errors.Wrapf(ErrDecodeIO, "source transaction %d not found in block %d of node %d", ref.ID, ref.BlockNumber, owner)
	}
	return src, nil
}
