// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/tx"
)

func TestGenesisHasNoSender(t *testing.T) {
	g := tx.Genesis(1, node.ID(7), 1000)
	assert.True(t, g.IsGenesis())
	require.NotNil(t, g.BlockNumber)
	assert.Equal(t, uint32(0), *g.BlockNumber)
}

func TestSealedCopiesAndResetsVerification(t *testing.T) {
	sender := node.ID(3)
	orig := tx.New(9, &sender, node.ID(4), 50, 0)
	orig.MarkVerified()

	sealed := orig.Sealed(5)
	require.NotNil(t, sealed.BlockNumber)
	assert.Equal(t, uint32(5), *sealed.BlockNumber)
	assert.False(t, sealed.LocallyVerified(), "a freshly sealed copy starts unverified")
	assert.True(t, orig.LocallyVerified(), "sealing must not mutate the original")
}

func TestSameAsIdentity(t *testing.T) {
	senderA := node.ID(1)
	a := tx.New(9, &senderA, node.ID(2), 10, 0).Sealed(3)
	b := tx.New(9, &senderA, node.ID(2), 10, 0).Sealed(3)
	assert.True(t, a.SameAs(b))

	senderB := node.ID(2)
	c := tx.New(9, &senderB, node.ID(2), 10, 0).Sealed(3)
	assert.False(t, a.SameAs(c), "different sender must not count as the same transaction")

	d := tx.New(9, &senderA, node.ID(2), 10, 0).Sealed(4)
	assert.False(t, a.SameAs(d), "different block number must not count as the same transaction")
}

func TestMessageRoundTrip(t *testing.T) {
	sender := node.ID(2)
	orig := tx.New(11, &sender, node.ID(6), 77, 1).Sealed(9)
	m := orig.ToMessage()
	assert.True(t, m.HasSender)
	assert.Equal(t, uint32(2), m.Sender)

	back := tx.FromMessage(m, 9)
	assert.Equal(t, orig.ID, back.ID)
	assert.Equal(t, orig.Receiver, back.Receiver)
	assert.Equal(t, orig.Amount, back.Amount)
	require.NotNil(t, back.Sender)
	assert.Equal(t, *orig.Sender, *back.Sender)
}

func TestGenesisMessageRoundTrip(t *testing.T) {
	g := tx.Genesis(1, node.ID(7), 1000)
	m := g.ToMessage()
	assert.False(t, m.HasSender)

	back := tx.FromMessage(m, 0)
	assert.True(t, back.IsGenesis())
}
