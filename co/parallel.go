// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "runtime"

// Parallel runs a producer function that feeds work items over queue
// onto a fixed-size pool of worker goroutines (GOMAXPROCS of them), and
// returns a channel that closes once every queued func has run and the
// producer has returned.
func Parallel(producer func(queue chan<- func())) <-chan struct{} {
	queue := make(chan func())
	done := make(chan struct{})

	var workers Goes
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		workers.Go(func() {
			for fn := range queue {
				fn()
			}
		})
	}

	go func() {
		producer(queue)
		close(queue)
		workers.Wait()
		close(done)
	}()

	return done
}
