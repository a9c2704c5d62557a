// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/proof"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	data, err := proof.EncodeEnvelope(proof.MsgIDProof, []byte{0x1, 0x2, 0x3})
	require.NoError(t, err)

	env, err := proof.OpenEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, proof.MsgIDProof, env.MessageID)
	assert.Equal(t, []byte{0x1, 0x2, 0x3}, env.Payload)
}

// TestWrapProofDispatchesEndToEnd sends a proof through the full wire
// form a transport would carry: wrap, open, dispatch by id, verify.
func TestWrapProofDispatchesEndToEnd(t *testing.T) {
	a := node.ID(1)
	b := node.ID(2)
	nt := newTestNet(t, a, b)

	genesis := nt.genesis(a, 100)
	sealed := nt.transfer(a, b, 0, genesis, 100)

	built, err := proof.Build(sealed, b, nt.knowledge[b], nt.stores[a])
	require.NoError(t, err)
	data, err := built.WrapProof()
	require.NoError(t, err)

	env, err := proof.OpenEnvelope(data)
	require.NoError(t, err)
	require.Equal(t, proof.MsgIDProof, env.MessageID)

	p, err := proof.HandleEnvelope(env, nt.stores[b])
	require.NoError(t, err)
	require.NoError(t, nt.apply(b, p))
}

func TestHandleEnvelopeRejectsUnhandledID(t *testing.T) {
	b := node.ID(2)
	nt := newTestNet(t, b)

	env := &proof.Envelope{MessageID: proof.MsgIDTransactionPattern}
	_, err := proof.HandleEnvelope(env, nt.stores[b])
	assert.ErrorIs(t, err, proof.ErrUnknownMessageID)
}
