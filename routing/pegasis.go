// Copyright (c) 2025-2026, The WSNSIM Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package routing

import (
	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/network"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

const (
	pegasisRoundDelay      = 50
	pegasisGatherDelay     = 30
	pegasisDegenerateDelay = 10
)

// Pegasis implements Power-Efficient Gathering in Sensor Information
// Systems. All live nodes are linked into a single greedy chain; each round
// one chain member acts as leader, both chain halves sweep their data one
// hop inward, and the leader aggregates and uploads to the base station.
type Pegasis struct {
	nw         *network.Network
	packetSize float64

	chainReconstructionInterval SimTime

	chain  []NodeId
	leader NodeId
}

func NewPegasis(params Params) *Pegasis {
	return &Pegasis{
		nw:                          params.Network,
		packetSize:                  params.PacketSize,
		chainReconstructionInterval: params.ChainReconstructionInterval,
		leader:                      InvalidNodeId,
	}
}

func (pg *Pegasis) Name() string {
	return string(ProtocolPegasis)
}

func (pg *Pegasis) Setup() {
	pg.constructChain()
}

func (pg *Pegasis) Run(p *scheduler.Proc) error {
	round := 0
	for {
		round++
		if len(pg.chain) > 0 {
			pg.leader = pg.chain[round%len(pg.chain)]
		}

		if pg.leader != InvalidNodeId && pg.nw.Node(pg.leader).Alive {
			if !p.Join(p.Spawn("pegasis-gather", pg.gatherData)) {
				return nil
			}
		}

		if p.Now()%pg.chainReconstructionInterval == 0 {
			pg.constructChain()
		}

		if !p.Sleep(pegasisRoundDelay) {
			return nil
		}
	}
}

// constructChain rebuilds the chain from scratch: a greedy nearest-neighbor
// tour over the live nodes, starting from the one furthest from the base
// station. Dead nodes are left out, so periodic reconstruction heals the
// chain as the network degrades.
func (pg *Pegasis) constructChain() {
	bs := pg.nw.BaseStation()

	maxDistance := -1.0
	start := InvalidNodeId
	aliveCount := 0
	for _, n := range pg.nw.Nodes() {
		if !n.Alive {
			continue
		}
		aliveCount++
		if d := bs.DistanceTo(n); d > maxDistance {
			maxDistance = d
			start = n.Id
		}
	}
	if start == InvalidNodeId {
		pg.chain = nil
		pg.leader = InvalidNodeId
		return
	}

	pg.chain = pg.chain[:0]
	pg.chain = append(pg.chain, start)
	inChain := map[NodeId]bool{start: true}

	for len(pg.chain) < aliveCount {
		last := pg.nw.Node(pg.chain[len(pg.chain)-1])

		minDistance := -1.0
		next := InvalidNodeId
		for _, n := range pg.nw.Nodes() {
			if !n.Alive || inChain[n.Id] {
				continue
			}
			if d := last.DistanceTo(n); next == InvalidNodeId || d < minDistance {
				minDistance = d
				next = n.Id
			}
		}
		if next == InvalidNodeId {
			break
		}
		pg.chain = append(pg.chain, next)
		inChain[next] = true
	}

	logger.Debugf("PEGASIS: chain reconstructed with %d nodes", len(pg.chain))
}

// gatherData sweeps both chain halves one hop toward the leader, then the
// leader aggregates all gathered data and transmits it to the base station.
// A failure halts only the sweep direction it occurred in.
func (pg *Pegasis) gatherData(p *scheduler.Proc) error {
	leader := pg.nw.Node(pg.leader)
	if len(pg.chain) == 0 || leader == nil || !leader.Alive {
		p.Sleep(pegasisDegenerateDelay)
		return nil
	}

	leaderIdx := -1
	for i, id := range pg.chain {
		if id == pg.leader {
			leaderIdx = i
			break
		}
	}
	if leaderIdx < 0 {
		// Leader fell out of the chain, e.g. it was reconstructed after
		// leader selection.
		p.Sleep(pegasisDegenerateDelay)
		return nil
	}

	dataSize := 0.0
	sweep := func(idx int, step int) float64 {
		gathered := 0.0
		for idx >= 0 && idx < len(pg.chain) {
			current := pg.nw.Node(pg.chain[idx])
			inward := pg.nw.Node(pg.chain[idx-step])

			if !current.Alive || !inward.Alive {
				break
			}

			if current.Sense(pg.packetSize) {
				gathered += pg.packetSize

				if !current.Transmit(pg.packetSize, current.DistanceTo(inward)) {
					break
				}
				if !inward.Receive(pg.packetSize) {
					break
				}
			}

			idx += step
		}
		return gathered
	}

	dataSize += sweep(leaderIdx-1, -1)
	dataSize += sweep(leaderIdx+1, +1)

	if dataSize > 0 && leader.Alive {
		aggregated := dataSize * AggregationRatio
		if leader.AggregateData(dataSize) {
			bs := pg.nw.BaseStation()
			if leader.Transmit(aggregated, bs.DistanceTo(leader)) {
				bs.ReceiveData(aggregated)
			}
		}
	}

	p.Sleep(pegasisGatherDelay)
	return nil
}

// Chain returns the node ids of the current chain in tour order.
func (pg *Pegasis) Chain() []NodeId {
	return pg.chain
}

// Leader returns the id of the current round's leader, or InvalidNodeId.
func (pg *Pegasis) Leader() NodeId {
	return pg.leader
}
