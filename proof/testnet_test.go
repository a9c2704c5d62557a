// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/chain"
	"github.com/meshledger/scaleout/mainchain"
	"github.com/meshledger/scaleout/meta"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/proof"
	"github.com/meshledger/scaleout/tx"
)

// testNet is a minimal multi-node harness: one proof.Store per node,
// each with its own chain copy per owner, all sharing one
// mainchain.Mock. It mirrors cmd/node's network, scaled down for
// focused scenario tests.
type testNet struct {
	t         *testing.T
	mc        *mainchain.Mock
	registry  *node.Registry
	stores    map[node.ID]*proof.Store
	knowledge map[node.ID]*meta.Knowledge
}

func newTestNet(t *testing.T, ids ...node.ID) *testNet {
	registry := node.NewRegistry(nil)
	for _, id := range ids {
		registry.Register(node.New(id))
	}
	mc := mainchain.NewMock()

	nt := &testNet{
		t:         t,
		mc:        mc,
		registry:  registry,
		stores:    make(map[node.ID]*proof.Store),
		knowledge: make(map[node.ID]*meta.Knowledge),
	}
	for _, id := range ids {
		s := proof.NewStore(registry, mc)
		for _, other := range ids {
			s.RegisterChain(other, chain.New(other))
		}
		nt.stores[id] = s
		nt.knowledge[id] = meta.New()
	}
	return nt
}

// genesis seeds owner's own chain with a committed genesis transaction
// of the given amount, and returns it.
func (nt *testNet) genesis(owner node.ID, amount uint64) *tx.Transaction {
	g := tx.Genesis(0, owner, amount)
	b := block.New(owner, tx.Transactions{g})

	c, err := nt.stores[owner].GetChain(owner)
	require.NoError(nt.t, err)
	require.NoError(nt.t, c.Update([]*block.Block{b}, nt.stores[owner]))
	nt.mc.Advance(0, owner)
	c.RefreshCommitted(nt.mc)
	return g
}

// transfer seals a new transaction spending source from sender to
// receiver into sender's own chain, commits it, and returns the sealed
// transaction.
func (nt *testNet) transfer(sender, receiver node.ID, id uint32, source *tx.Transaction, amount uint64) *tx.Transaction {
	senderStore := nt.stores[sender]
	c, err := senderStore.GetChain(sender)
	require.NoError(nt.t, err)

	prev, ok := c.GetBlock(uint32(c.Height()))
	require.True(nt.t, ok)

	newTx := tx.New(id, &sender, receiver, amount, 0)
	newTx.Source = []*tx.Transaction{source}
	number := uint32(c.Height() + 1)
	sealed := newTx.Sealed(number)

	blk, err := block.Compose(prev, tx.Transactions{sealed})
	require.NoError(nt.t, err)
	require.NoError(nt.t, c.Update([]*block.Block{blk}, senderStore))
	nt.mc.Advance(number, sender)
	c.RefreshCommitted(nt.mc)
	return sealed
}

// relay builds a proof for sealed on behalf of sender, round-trips it
// through Encode/Decode, and returns the decoded proof without calling
// Verify or ApplyUpdates, so a test can inspect or mutate it first.
func (nt *testNet) relay(sender, receiver node.ID, sealed *tx.Transaction) *proof.Proof {
	senderStore := nt.stores[sender]
	p, err := proof.Build(sealed, receiver, nt.knowledge[receiver], senderStore)
	require.NoError(nt.t, err)

	data, err := p.Encode()
	require.NoError(nt.t, err)

	p2, err := proof.Decode(data, nt.stores[receiver])
	require.NoError(nt.t, err)
	return p2
}

// apply verifies p against receiver's store and, on success, applies
// its updates and advances receiver's knowledge.
func (nt *testNet) apply(receiver node.ID, p *proof.Proof) error {
	if err := p.Verify(nt.stores[receiver]); err != nil {
		return err
	}
	return p.ApplyUpdates(nt.stores[receiver], nt.knowledge[receiver])
}
