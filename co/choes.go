// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Choes ("cancellable Goes") tracks a group of goroutines that each
// accept a stop channel, and can be asked to stop as a group. It backs
// the node's long-running workers (the inbound listener, proof-applying
// workers, the transaction generator): Stop signals all of them, Wait
// blocks until they have all observed it and returned.
type Choes struct {
	wg   sync.WaitGroup
	once sync.Once
	stop chan struct{}
}

func (g *Choes) init() {
	g.once.Do(func() {
		g.stop = make(chan struct{})
	})
}

// NewChoes returns a ready-to-use Choes. The zero value also works; this
// constructor exists for parity with call sites that prefer it.
func NewChoes() *Choes {
	g := &Choes{}
	g.init()
	return g
}

// Go starts f in a new goroutine, passing it the group's stop channel.
func (g *Choes) Go(f func(stop chan struct{})) {
	g.init()
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f(g.stop)
	}()
}

// Stop closes the group's stop channel, signalling every running f to
// return. Safe to call more than once.
func (g *Choes) Stop() {
	g.init()
	select {
	case <-g.stop:
	default:
		close(g.stop)
	}
}

// Wait blocks until every goroutine started via Go has returned.
func (g *Choes) Wait() {
	g.wg.Wait()
}
