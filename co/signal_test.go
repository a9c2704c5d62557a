// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSignalBroadcastBeforeWaitersAreNotWoken models a chain tick that
// fires before any verifier has subscribed: Waiters obtained after a
// Broadcast belong to the next generation and must not see it.
func TestSignalBroadcastBeforeWaitersAreNotWoken(t *testing.T) {
	var tick Signal
	tick.Broadcast()

	var waiters []Waiter
	for range 10 {
		waiters = append(waiters, tick.NewWaiter())
	}

	var stillWaiting int
	for _, w := range waiters {
		select {
		case <-w.C():
		default:
			stillWaiting++
		}
	}
	assert.Equal(t, 10, stillWaiting)
}

// TestSignalBroadcastWakesAllOutstandingWaiters models every
// block-applying worker subscribed to a chain's tick, all woken by one
// Broadcast call from chain.Update.
func TestSignalBroadcastWakesAllOutstandingWaiters(t *testing.T) {
	var tick Signal

	var waiters []Waiter
	for range 10 {
		waiters = append(waiters, tick.NewWaiter())
	}

	tick.Broadcast()

	for _, w := range waiters {
		<-w.C()
	}
}

// TestSignalGenerationsAreIndependent confirms a Waiter obtained for
// one generation never fires on a later Broadcast meant for the next.
func TestSignalGenerationsAreIndependent(t *testing.T) {
	var tick Signal

	first := tick.NewWaiter()
	tick.Broadcast()
	<-first.C()

	second := tick.NewWaiter()
	select {
	case <-second.C():
		t.Fatal("second-generation waiter fired before its own Broadcast")
	default:
	}

	tick.Broadcast()
	<-second.C()
}
