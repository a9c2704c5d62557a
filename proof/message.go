// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/tx"
)

// OwnerUpdates pairs a chain owner with the ordered block updates for
// that owner's chain. Message carries a list of these rather than a
// map, since the RLP wire codec has no map encoding; decode restores a
// map keyed by owner.
type OwnerUpdates struct {
	Owner  uint32
	Blocks []block.Message
}

// Message is the wire envelope for a Proof: a reference to the
// transaction being proven (identified by the chain that holds it, its
// block number, and its in-block id) plus the chain updates bundled to
// support verifying it.
type Message struct {
	Transaction  tx.SourceRef
	ChainUpdates []OwnerUpdates
}
