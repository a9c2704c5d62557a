// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co collects the small concurrency primitives the node process
// is built from: a wait-group-like goroutine tracker (Goes), a
// stoppable variant (Choes), a broadcast-once wake signal (Signal), and
// a fan-out helper (Parallel).
package co

import "sync"

// Signal is a broadcast-once-per-generation wake mechanism: every
// Broadcast call wakes every Waiter obtained before it via NewWaiter,
// and starts a fresh generation for Waiters obtained afterwards.
// Zero value is ready to use.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

// Waiter is woken when the Signal it was created from is next
// Broadcast. A Waiter is single-use: after it fires, obtain a new one
// via NewWaiter to wait again.
type Waiter struct {
	ch chan struct{}
}

// C returns the channel that closes when the Signal is broadcast.
func (w Waiter) C() <-chan struct{} {
	return w.ch
}

// NewWaiter returns a Waiter for the next Broadcast.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return Waiter{ch: s.ch}
}

// Broadcast wakes every outstanding Waiter and starts a new generation.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch != nil {
		close(s.ch)
	}
	s.ch = make(chan struct{})
}
