// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/chain"
	"github.com/meshledger/scaleout/mainchain"
	"github.com/meshledger/scaleout/meta"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/proof"
	"github.com/meshledger/scaleout/tx"
)

// network is the in-process simulation of cfg.Nodes worth of
// participants, each with its own LocalStore: its own chain is
// authoritative, every other node's chain starts empty and is filled in
// lazily as proofs carrying that chain's blocks are applied, the way a
// real node only ever learns of a peer's chain content through proofs
// referencing it.
type network struct {
	registry *node.Registry
	mc       *mainchain.Mock
	stores   map[node.ID]*proof.Store

	// knowledge holds each node's own watermark over every other
	// node's chain. A real sender would learn the receiver's
	// knowledge through a handshake this core doesn't model; solo.go
	// reads it directly, standing in for that exchange.
	knowledge map[node.ID]*meta.Knowledge
}

// newNetwork wires a Store and Knowledge per node.ID named in cfg, all
// sharing one Registry (node identity is common knowledge; chain
// content is not) and one mainchain.Mock (every node observes the same
// commitment oracle).
func newNetwork(cfg *NetworkConfig) *network {
	registry := node.NewRegistry(nil)
	for _, nc := range cfg.Nodes {
		registry.Register(node.New(node.ID(nc.ID)))
	}

	mc := mainchain.NewMock()
	nt := &network{
		registry:  registry,
		mc:        mc,
		stores:    make(map[node.ID]*proof.Store),
		knowledge: make(map[node.ID]*meta.Knowledge),
	}

	for _, nc := range cfg.Nodes {
		id := node.ID(nc.ID)
		s := proof.NewStore(registry, mc)
		for _, other := range cfg.Nodes {
			s.RegisterChain(node.ID(other.ID), chain.New(node.ID(other.ID)))
		}
		nt.stores[id] = s
		nt.knowledge[id] = meta.New()
	}

	for _, nc := range cfg.Nodes {
		id := node.ID(nc.ID)
		genesisTx := tx.Genesis(0, id, nc.Balance)
		genesisBlock := block.New(id, tx.Transactions{genesisTx})

		c, err := nt.stores[id].GetChain(id)
		if err != nil {
			panic(err) // every id was just registered above; unreachable
		}
		if err := c.Update([]*block.Block{genesisBlock}, nt.stores[id]); err != nil {
			panic(err)
		}
		nt.mc.Advance(0, id)
		c.RefreshCommitted(nt.mc)
	}
	return nt
}
