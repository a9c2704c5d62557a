// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package mainchain describes the external commitment oracle a node
// consults to tell whether a block has been finalized. The oracle itself
// - consensus, finality voting, whatever backs it - is out of scope;
// this package only specifies the contract proof verification needs.
package mainchain

import "github.com/meshledger/scaleout/node"

// BlockAbstract is everything the oracle needs to know about a block in
// order to commit it: its identity, and nothing about its contents. The
// oracle does not, and must not, re-verify transactions.
type BlockAbstract struct {
	Owner  node.ID
	Number uint32
}

// Hash identifies a committed block abstract as the oracle records it.
type Hash [32]byte

// MainChain is the external commitment oracle. A real deployment backs
// this with a BFT or similar finality protocol; of the six operations
// below, proof verification only ever calls IsPresentBlock.
type MainChain interface {
	// Init prepares the oracle for use. Called once before any other
	// method.
	Init() error

	// CommitAbstract submits a block abstract for commitment, returning
	// its Hash once committed.
	CommitAbstract(ba BlockAbstract) (Hash, error)

	// IsPresentHash reports whether h has been committed.
	IsPresentHash(h Hash) bool

	// IsPresentBlock reports whether the given (owner, number) pair has
	// been committed, regardless of the Hash it was committed under.
	IsPresentBlock(owner node.ID, number uint32) bool

	// CurrentHeight returns the number of abstracts committed so far.
	CurrentHeight() int64

	// Stop releases any resources Init acquired.
	Stop()
}
