// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx defines the transaction value transferred between nodes, and
// the wire-level representation used to carry it, and its sources, across
// a proof.
package tx

import (
	"fmt"
	"sync/atomic"

	"github.com/meshledger/scaleout/node"
)

// Transaction is a value transfer. Sender is nil iff the transaction is a
// genesis transaction. Source lists the transactions this one consumes as
// inputs; it is populated by proof decode's relinking pass, not by the
// wire message itself (which carries only SourceRef tuples).
type Transaction struct {
	ID       uint32
	Sender   *node.ID
	Receiver node.ID
	Amount   uint64
	// Remainder is opaque change/remainder data, carried but never
	// interpreted by the proof core.
	Remainder uint64

	// BlockNumber is set once the transaction has been sealed into a
	// block. It is nil for a freshly composed, not-yet-sealed transaction.
	BlockNumber *uint32

	Source []*Transaction

	verified atomic.Bool
}

// New creates a transaction with the given sender (nil for genesis) and
// receiver.
func New(id uint32, sender *node.ID, receiver node.ID, amount, remainder uint64) *Transaction {
	return &Transaction{
		ID:        id,
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Remainder: remainder,
	}
}

// Genesis creates a genesis transaction (no sender) sealed into block 0 of
// receiver's chain.
func Genesis(id uint32, receiver node.ID, amount uint64) *Transaction {
	t := New(id, nil, receiver, amount, 0)
	zero := uint32(0)
	t.BlockNumber = &zero
	return t
}

// Sealed returns a copy of tx sealed into the given block number. Use
// during chain/block construction, never on a transaction already
// referenced elsewhere, since Transaction identity is by pointer from
// then on.
func (t *Transaction) Sealed(blockNumber uint32) *Transaction {
	return &Transaction{
		ID:          t.ID,
		Sender:      t.Sender,
		Receiver:    t.Receiver,
		Amount:      t.Amount,
		Remainder:   t.Remainder,
		BlockNumber: &blockNumber,
		Source:      append([]*Transaction(nil), t.Source...),
	}
}

// IsGenesis reports whether tx has no sender.
func (t *Transaction) IsGenesis() bool {
	return t.Sender == nil
}

// LocallyVerified reports whether this transaction has already been
// successfully verified. It is safe for concurrent use: proof
// verification may fan recursive source verification out across
// goroutines sharing a Transaction reachable from more than one source
// edge.
func (t *Transaction) LocallyVerified() bool {
	return t.verified.Load()
}

// MarkVerified records that verification of this transaction succeeded.
// Idempotent and safe for concurrent use.
func (t *Transaction) MarkVerified() {
	t.verified.Store(true)
}

// SameAs reports whether t and other denote the same logical transaction:
// same sealed block number, same sender, same in-block id. This is the
// identity used for duplicate-transaction detection; pointer equality
// would miss a transaction decoded twice from separate wire messages,
// and full struct equality cannot distinguish equal ids resealed into
// different blocks.
func (t *Transaction) SameAs(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.ID != other.ID {
		return false
	}
	if t.IsGenesis() != other.IsGenesis() {
		return false
	}
	if !t.IsGenesis() && *t.Sender != *other.Sender {
		return false
	}
	if (t.BlockNumber == nil) != (other.BlockNumber == nil) {
		return false
	}
	if t.BlockNumber != nil && *t.BlockNumber != *other.BlockNumber {
		return false
	}
	return true
}

func (t *Transaction) String() string {
	sender := "genesis"
	if t.Sender != nil {
		sender = fmt.Sprintf("node(%d)", *t.Sender)
	}
	return fmt.Sprintf("Transaction(id=%d, sender=%s, receiver=node(%d), amount=%d)", t.ID, sender, t.Receiver, t.Amount)
}

// Transactions is an ordered list of Transaction.
type Transactions []*Transaction
