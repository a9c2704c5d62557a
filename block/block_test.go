// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

func TestGenesisValidates(t *testing.T) {
	owner := node.ID(1)
	g := block.New(owner, tx.Transactions{tx.Genesis(1, owner, 100)})
	require.NoError(t, g.Validate())
	assert.Equal(t, block.ID{Owner: owner, Number: 0}, g.Hash())
}

func TestGenesisWithPreviousIsInvalid(t *testing.T) {
	owner := node.ID(1)
	g := block.New(owner, nil)
	bad := &block.Block{Number: 0, Owner: owner, Previous: g}
	assert.ErrorIs(t, bad.Validate(), block.ErrBadGenesis)
}

func TestComposeChains(t *testing.T) {
	owner := node.ID(3)
	g := block.New(owner, nil)
	b1, err := block.Compose(g, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), b1.Number)
	assert.Equal(t, owner, b1.Owner)
	require.NoError(t, b1.Validate())
}

func TestComposeRejectsNilPrevious(t *testing.T) {
	_, err := block.Compose(nil, nil)
	assert.ErrorIs(t, err, block.ErrBadGenesis)
}

func TestBadSequenceDetected(t *testing.T) {
	owner := node.ID(1)
	g := block.New(owner, nil)
	bad := &block.Block{Number: 2, Owner: owner, Previous: g}
	assert.ErrorIs(t, bad.Validate(), block.ErrBadSequence)

	otherOwner := &block.Block{Number: 1, Owner: node.ID(99), Previous: g}
	assert.ErrorIs(t, otherOwner.Validate(), block.ErrBadSequence)
}

func TestHashIgnoresTransactionSet(t *testing.T) {
	owner := node.ID(1)
	a := block.New(owner, tx.Transactions{tx.Genesis(1, owner, 10)})
	b := block.New(owner, tx.Transactions{tx.Genesis(1, owner, 10), tx.Genesis(2, owner, 5)})
	assert.True(t, a.Equal(b), "blocks at the same (owner, number) are the same block regardless of contents")
}
