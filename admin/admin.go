// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/co"
	"github.com/meshledger/scaleout/metrics"
)

// StatsFunc returns a JSON-encodable snapshot of proof processing
// counters, to be mounted at /admin/stats. A nil StatsFunc disables the
// endpoint.
type StatsFunc func() any

func statsHandler(stats StatsFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats()) //nolint:errcheck
	}
}

// HTTPHandler builds the admin/metrics HTTP surface: /admin/loglevel
// (GET/POST), /metrics (Prometheus exposition, delegated to
// metrics.HTTPHandler), and, when stats is non-nil, /admin/stats.
func HTTPHandler(logLevel *slog.LevelVar, stats StatsFunc) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/admin/loglevel", logLevelHandler(logLevel))
	if stats != nil {
		router.HandleFunc("/admin/stats", statsHandler(stats))
	}
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}

// StartServer binds a listener at addr serving HTTPHandler, returning
// the reachable base URL and a stop function that closes the listener
// and waits for the serving goroutine to return.
func StartServer(addr string, logLevel *slog.LevelVar, stats StatsFunc) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           HTTPHandler(logLevel, stats),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}

	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener) //nolint:errcheck
	})
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		goes.Wait()
	}, nil
}
