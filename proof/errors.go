// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/tx"
)

// Sentinel error kinds. Every proof-validation failure is, or wraps,
// one of these; callers test kind membership with errors.Is or KindOf
// rather than type-switching.
var (
	ErrInvalidChainView     = errors.New("proof: invalid chain view")
	ErrTransactionNotFound  = errors.New("proof: transaction not found")
	ErrDuplicateTransaction = errors.New("proof: duplicate transaction")
	ErrNoCommittedAnchor    = errors.New("proof: no committed anchor")
	ErrMissingBlockNumber   = errors.New("proof: missing block number")
	ErrBadGenesis           = errors.New("proof: bad genesis transaction")
	ErrMissingGenesisBlock  = errors.New("proof: missing genesis block")
	ErrGenesisNotCommitted  = errors.New("proof: genesis block not committed")
	ErrDecodeIO             = errors.New("proof: I/O error during decode")
	// ErrSourceCycle is raised when a transaction's source graph loops
	// back on a transaction already on the current verification walk's
	// stack. The protocol assumes sources form a DAG; a Byzantine
	// sender that ships a cycle gets a failure instead of an infinite
	// recursion.
	ErrSourceCycle = errors.New("proof: cyclic source graph")
)

var kinds = []error{
	ErrInvalidChainView,
	ErrTransactionNotFound,
	ErrDuplicateTransaction,
	ErrNoCommittedAnchor,
	ErrMissingBlockNumber,
	ErrBadGenesis,
	ErrMissingGenesisBlock,
	ErrGenesisNotCommitted,
	ErrDecodeIO,
	ErrSourceCycle,
}

// KindOf returns the sentinel kind err is or wraps, or nil if err does
// not match any known kind.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// SourceError wraps a failure encountered while verifying one of a
// transaction's sources, identifying the offending source so a caller
// can report which link in the chain of sources broke while errors.Is
// still unwraps straight through to the originating kind.
type SourceError struct {
	Source *tx.Transaction
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("proof: source transaction %d invalid: %v", e.Source.ID, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
