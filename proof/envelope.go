// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Wire message ids. Every framed message leads with one of these; the
// receiving side dispatches on it before looking at the payload.
const (
	MsgIDTransaction        uint32 = 3
	MsgIDBlock              uint32 = 4
	MsgIDProof              uint32 = 5
	MsgIDTransactionPattern uint32 = 6
)

// ErrUnknownMessageID is returned by HandleEnvelope for a message id
// this core does not consume.
var ErrUnknownMessageID = errors.New("proof: unknown wire message id")

// Envelope frames a wire message: the id the receiver dispatches on,
// plus the still-encoded payload. The transport moves Envelopes; only
// HandleEnvelope looks inside.
type Envelope struct {
	MessageID uint32
	Payload   []byte
}

// EncodeEnvelope frames payload under id.
func EncodeEnvelope(id uint32, payload []byte) ([]byte, error) {
	data, err := rlp.EncodeToBytes(&Envelope{MessageID: id, Payload: payload})
	if err != nil {
		return nil, errors.Wrap(err, "rlp encode envelope")
	}
	return data, nil
}

// WrapProof encodes p and frames it as a MsgIDProof envelope, the form
// a sender actually puts on the wire.
func (p *Proof) WrapProof() ([]byte, error) {
	payload, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return EncodeEnvelope(MsgIDProof, payload)
}

// OpenEnvelope parses a framed wire message without decoding its
// payload, so a receiver can dispatch on the id first.
func OpenEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := rlp.DecodeBytes(data, &env); err != nil {
		return nil, errors.Wrap(err, "rlp decode envelope")
	}
	return &env, nil
}

// HandleEnvelope dispatches env by message id. Proof payloads decode
// and relink against ls; ids belonging to collaborators outside this
// core (raw transactions, standalone blocks, pattern control messages)
// are not handled here and return ErrUnknownMessageID.
func HandleEnvelope(env *Envelope, ls LocalStore) (*Proof, error) {
	switch env.MessageID {
	case MsgIDProof:
		return Decode(env.Payload, ls)
	default:
		return nil, errors.Wrapf(ErrUnknownMessageID, "message id %d", env.MessageID)
	}
}
