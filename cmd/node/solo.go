// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/rand"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/meshledger/scaleout/block"
	"github.com/meshledger/scaleout/co"
	"github.com/meshledger/scaleout/log"
	"github.com/meshledger/scaleout/node"
	"github.com/meshledger/scaleout/proof"
	"github.com/meshledger/scaleout/tx"
)

// simStats is the counter set exposed at /admin/stats during a solo
// run: how many hand-offs have gone through the full
// build/encode/decode/verify/apply pipeline, and how many attempted
// hand-offs failed.
type simStats struct {
	hops    atomic.Int64
	failed  atomic.Int64
	applied atomic.Int64
}

func (s *simStats) snapshot() any {
	return map[string]int64{
		"hops":    s.hops.Load(),
		"failed":  s.failed.Load(),
		"applied": s.applied.Load(),
	}
}

// lane runs one independent relay over its own ring of ids: each
// round, rng picks a sender and a distinct receiver, and the sender
// hands its currently-held transaction off (a sender holding nothing
// makes the round a failed hop), exercising
// proof.Build -> Encode -> Decode -> Verify -> ApplyUpdates end to end.
// It is a deliberately simplified single-token relay, not a wallet
// model: the point is to drive the proof pipeline, not to account for
// balances.
type lane struct {
	ids   []node.ID
	nt    *network
	stats *simStats
	rng   *rand.Rand
}

func (l *lane) run(rounds int) {
	n := len(l.ids)
	if n < 2 {
		return
	}
	heads := make(map[node.ID]*tx.Transaction, n)
	for _, id := range l.ids {
		c, err := l.nt.stores[id].GetChain(id)
		if err != nil {
			log.Error("lane: resolve own genesis chain", "node", id, "err", err)
			return
		}
		genesis, ok := c.GetBlock(0)
		if !ok {
			log.Error("lane: own genesis block missing", "node", id)
			return
		}
		t, ok := genesis.GetTransaction(0)
		if !ok {
			log.Error("lane: genesis block has no transaction", "node", id)
			return
		}
		heads[id] = t
	}

	nextID := uint32(1)
	for r := 0; r < rounds; r++ {
		si := l.rng.Intn(n)
		ri := (si + 1 + l.rng.Intn(n-1)) % n
		sender := l.ids[si]
		receiver := l.ids[ri]
		if err := l.hop(sender, receiver, heads, nextID); err != nil {
			l.stats.failed.Add(1)
			log.Warn("lane: hop failed", "sender", sender, "receiver", receiver, "err", err)
			continue
		}
		l.stats.hops.Add(1)
		nextID++
	}
}

func (l *lane) hop(sender, receiver node.ID, heads map[node.ID]*tx.Transaction, txID uint32) error {
	held := heads[sender]
	if held == nil {
		return errors.Errorf("node %d holds nothing to relay", sender)
	}

	senderStore := l.nt.stores[sender]
	c, err := senderStore.GetChain(sender)
	if err != nil {
		return errors.Wrap(err, "resolve sender's own chain")
	}

	newTx := tx.New(txID, &sender, receiver, held.Amount, 0)
	newTx.Source = []*tx.Transaction{held}

	number := uint32(c.Height() + 1)
	sealed := newTx.Sealed(number)

	prev, ok := c.GetBlock(uint32(c.Height()))
	if !ok {
		return errors.Errorf("sender %d has no chain tail", sender)
	}
	blk, err := block.Compose(prev, tx.Transactions{sealed})
	if err != nil {
		return errors.Wrap(err, "compose next block")
	}
	if err := c.Update([]*block.Block{blk}, senderStore); err != nil {
		return errors.Wrap(err, "seal block into sender's chain")
	}
	l.nt.mc.Advance(number, sender)
	c.RefreshCommitted(l.nt.mc)

	p, err := proof.Build(sealed, receiver, l.nt.knowledge[receiver], senderStore)
	if err != nil {
		return errors.Wrap(err, "build proof")
	}
	data, err := p.WrapProof()
	if err != nil {
		return errors.Wrap(err, "encode proof")
	}

	receiverStore := l.nt.stores[receiver]
	env, err := proof.OpenEnvelope(data)
	if err != nil {
		return errors.Wrap(err, "open envelope")
	}
	p2, err := proof.HandleEnvelope(env, receiverStore)
	if err != nil {
		return errors.Wrap(err, "decode proof")
	}
	if err := p2.Verify(receiverStore); err != nil {
		return errors.Wrap(err, "verify proof")
	}
	if err := p2.ApplyUpdates(receiverStore, l.nt.knowledge[receiver]); err != nil {
		return errors.Wrap(err, "apply proof updates")
	}
	l.stats.applied.Add(1)

	heads[sender] = nil
	heads[receiver] = p2.Transaction
	return nil
}

// runSolo partitions cfg's nodes into workers lanes of nodesPerLane ids
// each and runs them concurrently via co.Goes, the way the node
// process's worker pool applies proofs concurrently in production.
func runSolo(cfg *NetworkConfig, workers, rounds int, seed int64, stats *simStats) {
	nt := newNetwork(cfg)

	n := len(cfg.Nodes)
	if workers < 1 {
		workers = 1
	}
	perLane := n / workers
	if perLane < 2 {
		perLane = n
		workers = 1
	}

	var wg co.Goes
	for w := 0; w < workers; w++ {
		start := w * perLane
		end := start + perLane
		if w == workers-1 {
			end = n
		}
		ids := make([]node.ID, 0, end-start)
		for i := start; i < end; i++ {
			ids = append(ids, node.ID(cfg.Nodes[i].ID))
		}
		l := &lane{ids: ids, nt: nt, stats: stats, rng: rand.New(rand.NewSource(seed + int64(w)))}
		wg.Go(func() {
			l.run(rounds)
		})
	}
	wg.Wait()
}
