// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node describes the participants of the ledger: small-integer
// identified peers, each owning exactly one chain, plus the collaborators
// ("tracker", "local store") a peer uses to resolve other nodes by id.
package node

import "fmt"

// ID identifies a Node. Nodes are compared by identity, i.e. by ID.
type ID uint32

// Node is a participant of the ledger. It owns exactly one chain, addressed
// elsewhere by this Node's ID.
type Node struct {
	id ID
}

// New returns the Node for the given id.
func New(id ID) *Node {
	return &Node{id: id}
}

// ID returns the node's identifier.
func (n *Node) ID() ID {
	if n == nil {
		panic("node: ID of nil Node")
	}
	return n.id
}

// Equal reports whether n and other denote the same node.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.id == other.id
}

func (n *Node) String() string {
	if n == nil {
		return "Node(<nil>)"
	}
	return fmt.Sprintf("Node(%d)", n.id)
}
