// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proof

import (
	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/metrics"
)

// stats counts the work proof construction and verification do: chains
// and blocks bundled per Build, sources verified, and verification
// failures broken out by error kind. Every counter resolves lazily
// against metrics' current backend, so counters first touched before
// InitializePrometheusMetrics still end up prometheus-backed.
type stats struct {
	chainsBundled   func() metrics.CounterMetric
	blocksBundled   func() metrics.CounterMetric
	sourcesVerified func() metrics.CounterMetric
	failuresByKind  func() metrics.CounterVecMetric
}

// Stats is the package-level counter set Build and Verify report to.
var Stats = &stats{
	chainsBundled:   metrics.LazyLoadCounter("proof_chains_bundled"),
	blocksBundled:   metrics.LazyLoadCounter("proof_blocks_bundled"),
	sourcesVerified: metrics.LazyLoadCounter("proof_sources_verified"),
	failuresByKind:  metrics.LazyLoadCounterVec("proof_verification_failures", []string{"kind"}),
}

// failures returns a Counter scoped to kind's label, creating an
// "unknown" bucket for errors that do not match any declared kind (a
// SourceError's innermost cause does, by construction of KindOf).
func (s *stats) failures(kind error) interface{ Add(n int64) } {
	label := "unknown"
	if kind != nil {
		label = errors.Cause(kind).Error()
	}
	return failureCounter{vec: s.failuresByKind(), label: label}
}

type failureCounter struct {
	vec   metrics.CounterVecMetric
	label string
}

func (c failureCounter) Add(n int64) {
	c.vec.AddWithLabel(n, map[string]string{"kind": c.label})
}
