// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/meshledger/scaleout/node"

// SourceRef is the wire-level reference to a source transaction: the owner
// of the chain it was sealed into, plus its block number and in-block id.
// A proof carries SourceRef tuples rather than nested Transaction copies;
// proof.Decode resolves each ref against the relevant LightView.
type SourceRef struct {
	Owner       uint32
	BlockNumber uint32
	ID          uint32
}

// Message is the wire representation of a Transaction, RLP-encoded as part
// of a block.Message. Unlike Transaction, it carries no pointers: the
// sender/genesis distinction is carried by HasSender, and Source entries
// are unresolved SourceRef tuples rather than decoded Transactions.
type Message struct {
	ID        uint32
	HasSender bool
	Sender    uint32
	Receiver  uint32
	Amount    uint64
	Remainder uint64
	Source    []SourceRef
}

// ToMessage converts t into its wire form. The BlockNumber field is not
// carried on Message: it is implied by the enclosing BlockMessage.
func (t *Transaction) ToMessage() Message {
	m := Message{
		ID:        t.ID,
		Receiver:  uint32(t.Receiver),
		Amount:    t.Amount,
		Remainder: t.Remainder,
	}
	if t.Sender != nil {
		m.HasSender = true
		m.Sender = uint32(*t.Sender)
	}
	m.Source = make([]SourceRef, len(t.Source))
	for i, src := range t.Source {
		owner := uint32(src.Receiver)
		if !src.IsGenesis() {
			owner = uint32(*src.Sender)
		}
		m.Source[i] = SourceRef{
			Owner:       owner,
			BlockNumber: *src.BlockNumber,
			ID:          src.ID,
		}
	}
	return m
}

// FromMessage builds a Transaction from its wire form, sealed into the
// given block number. Source is left empty: the caller (proof.Decode)
// relinks it in a second pass once every chain in the bundle is available.
func FromMessage(m Message, blockNumber uint32) *Transaction {
	t := &Transaction{
		ID:          m.ID,
		Receiver:    node.ID(m.Receiver),
		Amount:      m.Amount,
		Remainder:   m.Remainder,
		BlockNumber: &blockNumber,
	}
	if m.HasSender {
		sender := node.ID(m.Sender)
		t.Sender = &sender
	}
	return t
}
