// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPHandler exposes /metrics when the prometheus backend is active;
// otherwise it serves nothing (404 for any path), matching a process
// that never called InitializePrometheusMetrics and so has nothing to
// scrape. admin.HTTPHandler mounts this under /metrics.
func HTTPHandler() http.Handler {
	mux := http.NewServeMux()

	mu.Lock()
	_, isProm := metrics.(promMeterSet)
	mu.Unlock()

	if isProm {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}
