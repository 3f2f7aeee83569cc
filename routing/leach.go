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
	"math"
	"math/rand"

	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/network"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

const (
	leachFramesPerRound  = 5
	leachSetupDuration   = 10
	leachFrameDuration   = 20
	leachSteadyTailDelay = 50
)

// Leach implements Low-Energy Adaptive Clustering Hierarchy. Every round it
// re-elects cluster heads with the adaptive threshold
// T = p / (1 - p*(round mod ceil(1/p))), forms clusters around them and runs
// a fixed number of TDMA data frames before idling out the round.
type Leach struct {
	nw         *network.Network
	packetSize float64
	rnd        *rand.Rand

	p         float64
	roundTime SimTime

	currentRound int
	clusterHeads []NodeId
	clusters     map[NodeId][]NodeId
}

func NewLeach(params Params) *Leach {
	return &Leach{
		nw:         params.Network,
		packetSize: params.PacketSize,
		rnd:        params.Rand,
		p:          params.LeachP,
		roundTime:  params.LeachRoundTime,
		clusters:   map[NodeId][]NodeId{},
	}
}

func (l *Leach) Name() string {
	return string(ProtocolLeach)
}

func (l *Leach) Setup() {
	for _, n := range l.nw.Nodes() {
		n.IsClusterHead = false
		n.ClusterHead = InvalidNodeId
	}
}

func (l *Leach) Run(p *scheduler.Proc) error {
	for {
		l.currentRound++

		setup := p.Spawn("leach-setup", l.setupPhase)
		if !p.Join(setup) {
			return nil
		}
		steady := p.Spawn("leach-steady", l.steadyStatePhase)
		if !p.Join(steady) {
			return nil
		}

		if !p.Sleep(l.roundTime) {
			return nil
		}
	}
}

// threshold is the cluster-head election probability of the current round.
// Every node becomes a head at least once per 1/p rounds in expectation.
func (l *Leach) threshold() float64 {
	period := int(math.Ceil(1 / l.p))
	return l.p / (1 - l.p*float64(l.currentRound%period))
}

// setupPhase elects cluster heads and forms the clusters of this round.
func (l *Leach) setupPhase(p *scheduler.Proc) error {
	l.electHeads()
	l.formClusters()
	l.distributeSchedules()

	p.Sleep(leachSetupDuration)
	return nil
}

// electHeads resets cluster state and elects the heads of this round. Each
// live node independently becomes a head with the adaptive threshold
// probability; draws happen in arena order so a fixed seed reproduces the
// same heads.
func (l *Leach) electHeads() {
	nodes := l.nw.Nodes()

	l.clusterHeads = l.clusterHeads[:0]
	l.clusters = map[NodeId][]NodeId{}
	for _, n := range nodes {
		n.IsClusterHead = false
		n.ClusterHead = InvalidNodeId
	}

	t := l.threshold()
	for _, n := range nodes {
		if !n.Alive {
			continue
		}
		if l.rnd.Float64() < t {
			n.IsClusterHead = true
			l.clusterHeads = append(l.clusterHeads, n.Id)
		}
	}
	logger.Debugf("LEACH round %d: %d cluster heads (t=%.3f)", l.currentRound, len(l.clusterHeads), t)

	// Heads broadcast their status, paying transmit cost per live listener.
	for _, chId := range l.clusterHeads {
		ch := l.nw.Node(chId)
		for _, n := range nodes {
			if n.Id != chId && n.Alive {
				ch.Transmit(ControlMsgSize, ch.DistanceTo(n))
			}
		}
	}
}

// formClusters lets every live non-head node join the geographically nearest
// head, paying the join-message exchange cost. With no heads elected this
// round, nodes stay unclustered and the steady state does nothing.
func (l *Leach) formClusters() {
	for _, n := range l.nw.Nodes() {
		if !n.Alive || n.IsClusterHead {
			continue
		}

		minDistance := math.Inf(1)
		nearest := InvalidNodeId
		for _, chId := range l.clusterHeads {
			if d := n.DistanceTo(l.nw.Node(chId)); d < minDistance {
				minDistance = d
				nearest = chId
			}
		}
		if nearest == InvalidNodeId {
			continue
		}

		n.ClusterHead = nearest
		l.clusters[nearest] = append(l.clusters[nearest], n.Id)
		n.Transmit(ControlMsgSize, minDistance)
		l.nw.Node(nearest).Receive(ControlMsgSize)
	}
}

// distributeSchedules sends each member its TDMA slot assignment.
func (l *Leach) distributeSchedules() {
	for _, chId := range l.clusterHeads {
		ch := l.nw.Node(chId)
		if !ch.Alive {
			continue
		}
		for _, memberId := range l.clusters[chId] {
			member := l.nw.Node(memberId)
			ch.Transmit(ScheduleMsgSize, ch.DistanceTo(member))
			member.Receive(ScheduleMsgSize)
		}
	}
}

// steadyStatePhase runs the data frames of the round: members sense and send
// to their head, the head aggregates and forwards to the base station.
func (l *Leach) steadyStatePhase(p *scheduler.Proc) error {
	bs := l.nw.BaseStation()

	for frame := 0; frame < leachFramesPerRound; frame++ {
		for _, chId := range l.clusterHeads {
			ch := l.nw.Node(chId)
			if !ch.Alive {
				continue
			}

			collected := 0.0
			for _, memberId := range l.clusters[chId] {
				member := l.nw.Node(memberId)
				if !member.Alive {
					continue
				}
				if !member.Sense(l.packetSize) {
					continue
				}
				if !member.Transmit(l.packetSize, member.DistanceTo(ch)) {
					continue
				}
				if ch.Receive(l.packetSize) {
					collected += l.packetSize
				}
			}

			if collected > 0 {
				aggregated := collected * AggregationRatio
				if ch.AggregateData(collected) {
					if ch.Transmit(aggregated, bs.DistanceTo(ch)) {
						bs.ReceiveData(aggregated)
					}
				}
			}
		}

		if !p.Sleep(leachFrameDuration) {
			return nil
		}
	}

	p.Sleep(leachSteadyTailDelay)
	return nil
}

// ClusterHeads returns the head ids of the current round.
func (l *Leach) ClusterHeads() []NodeId {
	return l.clusterHeads
}

// Clusters returns the member ids per cluster head for the current round.
func (l *Leach) Clusters() map[NodeId][]NodeId {
	return l.clusters
}
