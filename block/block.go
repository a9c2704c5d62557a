// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package block defines Block, the append-only unit of a node's chain.
package block

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

// ErrBadGenesis is returned by Validate when a genesis block (number 0)
// carries a Previous pointer, and by Compose when previous is nil.
var ErrBadGenesis = errors.New("block: genesis block must not have a previous block")

// ErrBadSequence is returned when a non-genesis block's Previous pointer
// does not satisfy previous.Number+1 == number, or belongs to a different
// owner.
var ErrBadSequence = errors.New("block: number/owner does not follow from previous block")

// Block is one unit of a Node's chain: a block number, the owning node,
// the transactions sealed into it, and a back-pointer to the previous
// block (nil only for block 0, the genesis block).
//
// A Block's identity - and so its Hash - depends only on (Number, Owner):
// two blocks at the same height on the same node's chain are the same
// block, regardless of how their transaction sets were observed to
// converge, per the ledger's append-only, single-owner-per-chain model.
type Block struct {
	Number       uint32
	Owner        node.ID
	Transactions tx.Transactions
	Previous     *Block
}

// New composes a genesis block (number 0, no previous block, no owner
// constraint beyond being the chain's owner).
func New(owner node.ID, txs tx.Transactions) *Block {
	return &Block{
		Number:       0,
		Owner:        owner,
		Transactions: txs,
	}
}

// Compose builds the block following previous, sealing the given
// transactions into it. The new block takes previous's owner and
// previous.Number+1; it returns ErrBadGenesis if previous is nil.
func Compose(previous *Block, txs tx.Transactions) (*Block, error) {
	if previous == nil {
		return nil, errors.WithMessage(ErrBadGenesis, "Compose: previous must not be nil")
	}
	return &Block{
		Number:       previous.Number + 1,
		Owner:        previous.Owner,
		Transactions: txs,
		Previous:     previous,
	}, nil
}

// Validate checks the block's own invariants: a genesis block (Number==0)
// must have no Previous; a non-genesis block's Previous must chain
// correctly by number and share this block's owner. Validate does not
// check anything about the transactions sealed into the block; that is
// the concern of proof verification.
func (b *Block) Validate() error {
	if b.Number == 0 {
		if b.Previous != nil {
			return ErrBadGenesis
		}
		return nil
	}
	if b.Previous == nil {
		return errors.WithMessage(ErrBadSequence, "non-genesis block has no previous block")
	}
	if b.Previous.Number+1 != b.Number {
		return errors.WithMessagef(ErrBadSequence, "block %d follows block %d", b.Number, b.Previous.Number)
	}
	if b.Previous.Owner != b.Owner {
		return errors.WithMessagef(ErrBadSequence, "block %d owner %d does not match previous owner %d", b.Number, b.Owner, b.Previous.Owner)
	}
	return nil
}

// ID identifies a block within its chain by (Owner, Number), the two
// fields a block's identity depends on.
type ID struct {
	Owner  node.ID
	Number uint32
}

// Hash returns the block's identity. Two Blocks with the same Hash are
// the same block, irrespective of how their Transactions slices were
// populated.
func (b *Block) Hash() ID {
	return ID{Owner: b.Owner, Number: b.Number}
}

// Equal reports whether a and b are the same block, by Hash.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Hash() == other.Hash()
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(owner=%d, number=%d, txs=%d)", b.Owner, b.Number, len(b.Transactions))
}

// GetTransaction returns the transaction sealed into this block under the
// given in-block id.
func (b *Block) GetTransaction(id uint32) (*tx.Transaction, bool) {
	for _, t := range b.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Contains reports whether t was sealed into this block. Identity is by
// tx.Transaction.SameAs rather than pointer equality, scoped to this
// block's own transaction set, so that duplicate-transaction detection
// still works on blocks decoded from separate wire messages.
func (b *Block) Contains(t *tx.Transaction) bool {
	for _, candidate := range b.Transactions {
		if candidate.SameAs(t) {
			return true
		}
	}
	return false
}
