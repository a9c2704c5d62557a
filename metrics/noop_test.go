// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNoopBackendDiscardsProofMetrics exercises the noop backend with
// proof-pipeline metric names, some of them the ones proof.Stats
// registers (chains and blocks bundled) and some extra shapes: before InitializePrometheusMetrics is ever called, none of this
// should be observable on /metrics.
func TestNoopBackendDiscardsProofMetrics(t *testing.T) {
	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	chainsBundled := Counter("proof_chains_bundled")
	Counter("proof_blocks_bundled")

	chainsBundled.Add(1)
	rounds := rand.N(100) + 1
	for range rounds {
		Counter("proof_blocks_bundled").Add(1)
	}

	sourcesVerified := Histogram("proof_source_depth", nil)
	failuresByKind := CounterVec("proof_verification_failures", []string{"kind"})
	for i := range rand.N(100) + 1 {
		sourcesVerified.Observe(int64(i))
		failuresByKind.AddWithLabel(int64(i), map[string]string{"kind": "no_committed_anchor"})
	}

	gaugeVec := GaugeVec("proof_pending_applies", []string{"owner"})
	for i := range rand.N(100) + 1 {
		gaugeVec.AddWithLabel(int64(i), map[string]string{"owner": "node(1)"})
	}

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)
}
