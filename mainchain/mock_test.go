// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mainchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshledger/scaleout/mainchain"
	"github.com/meshledger/scaleout/node"
)

func TestMockCommitIsIdempotent(t *testing.T) {
	m := mainchain.NewMock()
	require.NoError(t, m.Init())
	owner := node.ID(1)

	h1, err := m.CommitAbstract(mainchain.BlockAbstract{Owner: owner, Number: 3})
	require.NoError(t, err)
	h2, err := m.CommitAbstract(mainchain.BlockAbstract{Owner: owner, Number: 3})
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.EqualValues(t, 1, m.CurrentHeight())
}

func TestMockIsPresent(t *testing.T) {
	m := mainchain.NewMock()
	owner := node.ID(2)

	assert.False(t, m.IsPresentBlock(owner, 1))
	h, err := m.CommitAbstract(mainchain.BlockAbstract{Owner: owner, Number: 1})
	require.NoError(t, err)

	assert.True(t, m.IsPresentBlock(owner, 1))
	assert.True(t, m.IsPresentHash(h))
}

func TestMockAdvanceCommitsAllOwners(t *testing.T) {
	m := mainchain.NewMock()
	a, b := node.ID(1), node.ID(2)

	m.Advance(4, a, b)

	assert.True(t, m.IsPresentBlock(a, 4))
	assert.True(t, m.IsPresentBlock(b, 4))
	assert.False(t, m.IsPresentBlock(a, 5))
}

func TestDeterministicHashAcrossInstances(t *testing.T) {
	m1 := mainchain.NewMock()
	m2 := mainchain.NewMock()
	owner := node.ID(9)

	h1, err := m1.CommitAbstract(mainchain.BlockAbstract{Owner: owner, Number: 7})
	require.NoError(t, err)
	h2, err := m2.CommitAbstract(mainchain.BlockAbstract{Owner: owner, Number: 7})
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "two independent Mocks fed the same commit must agree on hash")
}
