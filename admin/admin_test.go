// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshledger/scaleout/admin"
	"github.com/meshledger/scaleout/log"
)

func TestGetLogLevel(t *testing.T) {
	var lv slog.LevelVar
	lv.Set(log.LevelInfo)

	server := httptest.NewServer(admin.HTTPHandler(&lv, nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/admin/loglevel")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPostLogLevelRejectsUnknown(t *testing.T) {
	var lv slog.LevelVar
	server := httptest.NewServer(admin.HTTPHandler(&lv, nil))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/admin/loglevel", "application/json", strings.NewReader(`{"level":"verbose"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsEndpointOptional(t *testing.T) {
	var lv slog.LevelVar
	server := httptest.NewServer(admin.HTTPHandler(&lv, nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/admin/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsEndpointServesSnapshot(t *testing.T) {
	var lv slog.LevelVar
	server := httptest.NewServer(admin.HTTPHandler(&lv, func() any {
		return map[string]int{"chainsBundled": 3}
	}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/admin/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
