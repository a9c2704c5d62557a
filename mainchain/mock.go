// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mainchain

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"github.com/meshledger/scaleout/node"
)

// Mock is a deterministic, in-memory MainChain for tests and for the
// single-process simulation mode: it commits whatever it is given,
// immediately and unconditionally, deriving each Hash from the abstract's
// own (owner, number) so that two Mocks fed the same commit sequence
// agree on every Hash without coordinating.
type Mock struct {
	mu        sync.RWMutex
	byHash    map[Hash]BlockAbstract
	committed map[node.ID]map[uint32]bool
	height    int64
}

// NewMock returns a ready-to-use Mock. Init is a no-op for Mock but is
// still required by the MainChain contract.
func NewMock() *Mock {
	return &Mock{
		byHash:    make(map[Hash]BlockAbstract),
		committed: make(map[node.ID]map[uint32]bool),
	}
}

// Init implements MainChain.
func (m *Mock) Init() error {
	return nil
}

func abstractHash(ba BlockAbstract) Hash {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(ba.Owner))
	binary.BigEndian.PutUint32(buf[4:8], ba.Number)
	return Hash(sha256.Sum256(buf[:]))
}

// CommitAbstract implements MainChain.
func (m *Mock) CommitAbstract(ba BlockAbstract) (Hash, error) {
	h := abstractHash(ba)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byHash[h]; !ok {
		m.byHash[h] = ba
		if m.committed[ba.Owner] == nil {
			m.committed[ba.Owner] = make(map[uint32]bool)
		}
		m.committed[ba.Owner][ba.Number] = true
		m.height++
	}
	return h, nil
}

// Advance is a simulation/test helper with no equivalent in the
// MainChain interface: it commits every block at the given number for
// each listed owner in one call, the way cmd/node's solo simulation
// commits each newly sealed block.
func (m *Mock) Advance(number uint32, owners ...node.ID) {
	for _, owner := range owners {
		_, _ = m.CommitAbstract(BlockAbstract{Owner: owner, Number: number})
	}
}

// IsPresentHash implements MainChain.
func (m *Mock) IsPresentHash(h Hash) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byHash[h]
	return ok
}

// IsPresentBlock implements MainChain.
func (m *Mock) IsPresentBlock(owner node.ID, number uint32) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byNumber, ok := m.committed[owner]
	if !ok {
		return false
	}
	return byNumber[number]
}

// CurrentHeight implements MainChain.
func (m *Mock) CurrentHeight() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.height
}

// Stop implements MainChain.
func (m *Mock) Stop() {}
