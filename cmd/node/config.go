// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NetworkConfig describes the static genesis state of a simulated
// network: one entry per node, each seeded with a genesis balance on
// its own chain.
type NetworkConfig struct {
	Nodes []NodeConfig `yaml:"nodes"`
}

// NodeConfig is one node's genesis entry.
type NodeConfig struct {
	ID      uint32 `yaml:"id"`
	Balance uint64 `yaml:"balance"`
}

// loadNetworkConfig reads a NetworkConfig from path.
func loadNetworkConfig(path string) (*NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read network config %s", path)
	}
	var cfg NetworkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse network config %s", path)
	}
	if len(cfg.Nodes) == 0 {
		return nil, errors.Errorf("network config %s defines no nodes", path)
	}
	return &cfg, nil
}

// defaultNetworkConfig builds an n-node network, each seeded with the
// same genesis balance, for runs that don't pass -config.
func defaultNetworkConfig(n int, balance uint64) *NetworkConfig {
	cfg := &NetworkConfig{}
	for i := 0; i < n; i++ {
		cfg.Nodes = append(cfg.Nodes, NodeConfig{ID: uint32(i), Balance: balance})
	}
	return cfg
}
