// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import "github.com/meshledger/scaleout/tx"

// Message is the wire representation of a Block as carried inside a
// proof: the owner and number identify the block, Transactions carries
// each sealed transaction in its own wire form. A back-pointer is never
// carried on the wire: proof decode relinks it, following block 0's
// invariant of never having one and every other block's of always
// having one.
type Message struct {
	Owner        uint32
	Number       uint32
	Transactions []tx.Message
}

// ToMessage converts b into its wire form. Previous is not walked here:
// proof encoding decides, per block, how far back in owner's chain to
// include before truncating the update list.
func (b *Block) ToMessage() Message {
	m := Message{
		Owner:        uint32(b.Owner),
		Number:       b.Number,
		Transactions: make([]tx.Message, len(b.Transactions)),
	}
	for i, t := range b.Transactions {
		m.Transactions[i] = t.ToMessage()
	}
	return m
}
