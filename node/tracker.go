// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import "github.com/pkg/errors"

// ErrUnknownNode is returned by a Tracker or LocalStore when asked to
// resolve an id it cannot find, locally or remotely.
var ErrUnknownNode = errors.New("node: unknown node id")

// Tracker resolves a Node by id, possibly contacting a remote directory
// service. Resolve may block and may fail with I/O errors, which
// Registry.GetNode returns to its caller. Proof decode resolves chains
// through proof.LocalStore.GetChain and does not call GetNode, so
// Resolve failures do not surface from decode.
type Tracker interface {
	Resolve(id ID) (*Node, error)
}

// LocalStore is the node-lookup collaborator the proof package consumes.
// The container that owns each node's chain also sits behind this in a
// complete node process; this package only names the lookup surface.
type LocalStore interface {
	GetNode(id ID) (*Node, error)
}

// TrackerFunc adapts a function to a Tracker.
type TrackerFunc func(id ID) (*Node, error)

// Resolve implements Tracker.
func (f TrackerFunc) Resolve(id ID) (*Node, error) {
	return f(id)
}
