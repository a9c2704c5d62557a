// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
)

// TestGoesTracksSourceVerificationFanOut models the shape of proof
// verification's source fan-out: one goroutine per source transaction,
// Wait blocking the caller until every source has been checked.
func TestGoesTracksSourceVerificationFanOut(t *testing.T) {
	var g Goes
	var verified atomic.Int32

	sources := 8
	for i := 0; i < sources; i++ {
		g.Go(func() {
			verified.Add(1)
		})
	}
	g.Wait()

	if got := verified.Load(); got != int32(sources) {
		t.Errorf("verified = %d, want %d", got, sources)
	}
}

// TestGoesDoneClosesOnceAllReturn checks Done's channel form, used
// where a caller needs to select against a group finishing alongside
// some other event (e.g. an interrupt signal, as cmd/node's main loop
// does).
func TestGoesDoneClosesOnceAllReturn(t *testing.T) {
	var g Goes
	release := make(chan struct{})

	g.Go(func() { <-release })
	g.Go(func() { <-release })

	select {
	case <-g.Done():
		t.Fatal("Done closed before goroutines returned")
	default:
	}

	close(release)
	<-g.Done()
}

// TestGoesZeroValueUsable confirms an unused Goes's Wait returns
// immediately, the way a lane with zero queued hops completes its
// worker fan-out trivially.
func TestGoesZeroValueUsable(t *testing.T) {
	var g Goes
	g.Wait()
	<-g.Done()
}
