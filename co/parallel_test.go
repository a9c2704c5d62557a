// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestParallelRunsQueuedWorkConcurrently models a batch of proof
// verifications fed onto Parallel's worker pool: queuing n independent
// jobs and waiting for Parallel's done channel must take roughly
// 1/GOMAXPROCS of the serial time, not n times a single job's cost.
func TestParallelRunsQueuedWorkConcurrently(t *testing.T) {
	const n = 50
	job := func() { time.Sleep(20 * time.Millisecond) }

	serialStart := time.Now()
	for range n {
		job()
	}
	serial := time.Since(serialStart)

	parallelStart := time.Now()
	<-Parallel(func(queue chan<- func()) {
		for range n {
			queue <- job
		}
	})
	parallel := time.Since(parallelStart)

	t.Logf("serial=%v parallel=%v", serial, parallel)
	if parallel >= serial {
		t.Errorf("parallel run (%v) was not faster than serial run (%v)", parallel, serial)
	}
}

// TestParallelRunsEveryQueuedJob confirms Parallel's done channel
// doesn't close until every job the producer queued has actually run,
// not merely until the producer function has returned.
func TestParallelRunsEveryQueuedJob(t *testing.T) {
	const n = 200
	var ran atomic.Int32

	<-Parallel(func(queue chan<- func()) {
		for range n {
			queue <- func() { ran.Add(1) }
		}
	})

	if got := ran.Load(); got != n {
		t.Errorf("ran = %d, want %d", got, n)
	}
}
