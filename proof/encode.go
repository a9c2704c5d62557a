// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

// ownerOf returns the chain a transaction's own block lives on: the
// sender's, or the receiver's for a genesis transaction.
func ownerOf(t *tx.Transaction) node.ID {
	if t.IsGenesis() {
		return t.Receiver
	}
	return *t.Sender
}

// ToMessage converts p into its wire form. Chain updates are emitted in
// ascending owner-id order so two independent encodings of an
// equivalent Proof produce identical bytes.
func (p *Proof) ToMessage() (Message, error) {
	if p.Transaction == nil {
		return Message{}, errors.New("proof: cannot encode a proof with no transaction")
	}
	if p.Transaction.BlockNumber == nil {
		return Message{}, errors.WithStack(ErrMissingBlockNumber)
	}

	msg := Message{
		Transaction: tx.SourceRef{
			Owner:       uint32(ownerOf(p.Transaction)),
			BlockNumber: *p.Transaction.BlockNumber,
			ID:          p.Transaction.ID,
		},
	}

	owners := make([]node.ID, 0, len(p.ChainUpdates))
	for owner := range p.ChainUpdates {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	for _, owner := range owners {
		blocks := p.ChainUpdates[owner]
		bms := make([]block.Message, len(blocks))
		for i, b := range blocks {
			bms[i] = b.ToMessage()
		}
		msg.ChainUpdates = append(msg.ChainUpdates, OwnerUpdates{Owner: uint32(owner), Blocks: bms})
	}
	return msg, nil
}

// Encode RLP-encodes p's wire form.
func (p *Proof) Encode() ([]byte, error) {
	msg, err := p.ToMessage()
	if err != nil {
		return nil, err
	}
	data, err := rlp.EncodeToBytes(&msg)
	if err != nil {
		return nil, errors.Wrap(err, "rlp encode proof")
	}
	return data, nil
}
