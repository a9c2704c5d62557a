// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Goes tracks a group of goroutines, like a named sync.WaitGroup. Zero
// value is ready to use.
type Goes struct {
	wg       sync.WaitGroup
	initOnce sync.Once
	doneOnce sync.Once
	done     chan struct{}
}

func (g *Goes) init() {
	g.initOnce.Do(func() {
		g.done = make(chan struct{})
	})
}

// Go runs f in a new goroutine tracked by g.
func (g *Goes) Go(f func()) {
	g.init()
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started via Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done returns a channel that closes once every goroutine started via Go
// has returned. Unlike Wait, Done lets the caller select against other
// channels while waiting.
func (g *Goes) Done() <-chan struct{} {
	g.init()
	g.doneOnce.Do(func() {
		go func() {
			g.wg.Wait()
			close(g.done)
		}()
	})
	return g.done
}
