// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meshledger/scaleout/meta"
	"github.com/meshledger/scaleout/node"
)

func TestFreshKnowledgeStartsAtZero(t *testing.T) {
	k := meta.New()
	owner := node.ID(1)
	assert.Equal(t, uint32(0), k.FirstUnknownBlockNumber(owner))
	_, ok := k.LastKnownBlockNumber(owner)
	assert.False(t, ok)
}

func TestUpdateAdvancesWatermarks(t *testing.T) {
	k := meta.New()
	owner := node.ID(2)

	k.Update(owner, 5)
	last, ok := k.LastKnownBlockNumber(owner)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), last)
	assert.Equal(t, uint32(6), k.FirstUnknownBlockNumber(owner))

	k.Update(owner, 2)
	last, _ = k.LastKnownBlockNumber(owner)
	assert.Equal(t, uint32(5), last, "an older observation must not regress the watermark")
}

func TestMergeTakesHigherWatermark(t *testing.T) {
	a := meta.New()
	b := meta.New()
	owner := node.ID(3)
	a.Update(owner, 3)
	b.Update(owner, 9)

	a.Merge(b)
	last, ok := a.LastKnownBlockNumber(owner)
	assert.True(t, ok)
	assert.Equal(t, uint32(9), last)
}
