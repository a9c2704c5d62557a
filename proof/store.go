// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/chain"
	"github.com/meshledger/scaleout/mainchain"
	"github.com/meshledger/scaleout/node"
)

// LocalStore is everything proof construction, decode and verification
// need from the node process around them: node identity resolution, the
// base chain.Chain to build a ChainView over for a given owner, and the
// main-chain commitment oracle.
type LocalStore interface {
	GetNode(id node.ID) (*node.Node, error)
	GetChain(owner node.ID) (*chain.Chain, error)
	MainChain() mainchain.MainChain
}

// Store is the in-memory LocalStore this module ships: a node.Registry
// for identity, a map of explicitly registered owner chains, and a
// mainchain.MainChain oracle. It is the collaborator cmd/node wires up
// and tests construct directly to exercise proof.Decode/Verify without
// a network.
type Store struct {
	registry *node.Registry
	mc       mainchain.MainChain

	mu     sync.RWMutex
	chains map[node.ID]*chain.Chain
}

// NewStore builds a Store around registry (node identity resolution)
// and mc (the commitment oracle).
func NewStore(registry *node.Registry, mc mainchain.MainChain) *Store {
	return &Store{
		registry: registry,
		mc:       mc,
		chains:   make(map[node.ID]*chain.Chain),
	}
}

// GetNode implements LocalStore by delegating to the registry.
func (s *Store) GetNode(id node.ID) (*node.Node, error) {
	return s.registry.GetNode(id)
}

// MainChain implements LocalStore.
func (s *Store) MainChain() mainchain.MainChain {
	return s.mc
}

// RegisterChain makes c available as owner's chain. Call once per
// owner before the chain is first needed; a chain requested before
// being registered is an unknown-node error, since proof verification
// must never silently fabricate an empty chain for an owner it hasn't
// been told about.
func (s *Store) RegisterChain(owner node.ID, c *chain.Chain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chains[owner] = c
}

// GetChain implements LocalStore.
func (s *Store) GetChain(owner node.ID) (*chain.Chain, error) {
	s.mu.RLock()
	c, ok := s.chains[owner]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(node.ErrUnknownNode, "no local chain registered for node %d", owner)
	}
	return c, nil
}
