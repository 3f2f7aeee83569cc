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
	"math/rand"

	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/network"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

const (
	ddEventProbability = 0.01
	ddEventExpiry      = 50
	ddInterestDelay    = 20
	ddDetectDelay      = 5
	ddDeliverDelay     = 10
	ddReinforceDelay   = 10
	ddLoopDelay        = 10
)

// DirectedDiffusion implements data-centric routing with interest flooding
// and gradient-based delivery. The sink floods an interest through the
// network; every node keeps a gradient weight toward the upstream node that
// reached it first, and sensed events greedily climb the gradients back to
// the sink.
type DirectedDiffusion struct {
	nw         *network.Network
	packetSize float64
	rnd        *rand.Rand

	interestInterval      SimTime
	reinforcementInterval SimTime

	// gradients[n][upstream] is the reinforcement weight of forwarding
	// from n to upstream, rebuilt on every interest propagation.
	gradients map[NodeId]map[NodeId]float64

	// eventsDetected maps a node id to the detection time of its most
	// recent event. Entries expire after ddEventExpiry time units.
	eventsDetected map[NodeId]SimTime
}

func NewDirectedDiffusion(params Params) *DirectedDiffusion {
	return &DirectedDiffusion{
		nw:                    params.Network,
		packetSize:            params.PacketSize,
		rnd:                   params.Rand,
		interestInterval:      params.InterestInterval,
		reinforcementInterval: params.ReinforcementInterval,
		gradients:             map[NodeId]map[NodeId]float64{},
		eventsDetected:        map[NodeId]SimTime{},
	}
}

func (d *DirectedDiffusion) Name() string {
	return string(ProtocolDirectedDiffusion)
}

func (d *DirectedDiffusion) Setup() {
	for _, n := range d.nw.Nodes() {
		if n.Alive {
			d.gradients[n.Id] = map[NodeId]float64{}
		}
	}
}

func (d *DirectedDiffusion) Run(p *scheduler.Proc) error {
	if !p.Join(p.Spawn("dd-interest", d.propagateInterest)) {
		return nil
	}

	for {
		if !p.Join(p.Spawn("dd-detect", d.detectEvents)) {
			return nil
		}
		if !p.Join(p.Spawn("dd-deliver", d.deliverData)) {
			return nil
		}

		if p.Now()%d.reinforcementInterval == 0 {
			if !p.Join(p.Spawn("dd-reinforce", d.reinforcePaths)) {
				return nil
			}
		}
		if p.Now()%d.interestInterval == 0 {
			if !p.Join(p.Spawn("dd-interest", d.propagateInterest)) {
				return nil
			}
		}

		if !p.Sleep(ddLoopDelay) {
			return nil
		}
	}
}

// propagateInterest floods an interest packet outward from the base station.
// The traversal is breadth first, seeded with every live node within base
// station range at hop count 1, and sets each newly reached node's gradient
// toward its upstream to 1/hops.
func (d *DirectedDiffusion) propagateInterest(p *scheduler.Proc) error {
	nodes := d.nw.Nodes()
	bs := d.nw.BaseStation()

	for _, n := range nodes {
		if n.Alive {
			d.gradients[n.Id] = map[NodeId]float64{}
		}
	}

	type frontier struct {
		id   NodeId
		hops int
	}
	var queue []frontier
	visited := map[NodeId]bool{}

	for _, n := range nodes {
		if n.Alive && bs.DistanceTo(n) <= BaseStationRange {
			queue = append(queue, frontier{n.Id, 1})
			visited[n.Id] = true
		}
	}
	logger.Debugf("DirectedDiffusion: interest propagation from %d seed nodes", len(queue))

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		current := d.nw.Node(cur.id)

		current.Receive(InterestMsgSize)

		for _, nbId := range current.Neighbors {
			neighbor := d.nw.Node(nbId)
			if !neighbor.Alive || visited[nbId] {
				continue
			}

			grads := d.gradients[nbId]
			if grads == nil {
				grads = map[NodeId]float64{}
				d.gradients[nbId] = grads
			}
			grads[cur.id] = 1.0 / float64(cur.hops)

			queue = append(queue, frontier{nbId, cur.hops + 1})
			visited[nbId] = true

			current.Transmit(InterestMsgSize, current.DistanceTo(neighbor))
		}
	}

	p.Sleep(ddInterestDelay)
	return nil
}

// detectEvents gives every live node a small independent chance of sensing
// an event this cycle. Draws happen in arena order.
func (d *DirectedDiffusion) detectEvents(p *scheduler.Proc) error {
	for _, n := range d.nw.Nodes() {
		if n.Alive && d.rnd.Float64() < ddEventProbability {
			d.eventsDetected[n.Id] = p.Now()
			n.Sense(d.packetSize)
		}
	}

	p.Sleep(ddDetectDelay)
	return nil
}

// deliverData walks every pending event up its gradients toward the sink.
// Expired events are evicted without delivery; a transmit or receive failure
// aborts only that event's path.
func (d *DirectedDiffusion) deliverData(p *scheduler.Proc) error {
	bs := d.nw.BaseStation()

	for _, n := range d.nw.Nodes() {
		eventTime, ok := d.eventsDetected[n.Id]
		if !ok {
			continue
		}
		if p.Now()-eventTime > ddEventExpiry {
			delete(d.eventsDetected, n.Id)
			continue
		}
		if !n.Alive {
			continue
		}

		current := n
		visited := map[NodeId]bool{n.Id: true}

		for {
			// The next hop is the unvisited live neighbor with the
			// strongest gradient.
			grads := d.gradients[current.Id]
			if grads == nil {
				break
			}

			var nextHop *network.SensorNode
			maxGradient := 0.0
			for _, nbId := range current.Neighbors {
				neighbor := d.nw.Node(nbId)
				if !neighbor.Alive || visited[nbId] {
					continue
				}
				if g := grads[nbId]; g > maxGradient {
					maxGradient = g
					nextHop = neighbor
				}
			}
			if nextHop == nil {
				break
			}

			if !current.Transmit(d.packetSize, current.DistanceTo(nextHop)) {
				break
			}
			if !nextHop.Receive(d.packetSize) {
				break
			}

			visited[nextHop.Id] = true
			current = nextHop

			if distance := bs.DistanceTo(current); distance <= BaseStationRange {
				if current.Transmit(d.packetSize, distance) {
					bs.ReceiveData(d.packetSize)
				}
				break
			}
		}
	}

	p.Sleep(ddDeliverDelay)
	return nil
}

// reinforcePaths normalizes every live node's outgoing gradients to sum to 1
// and pays a small control-message exchange per gradient edge.
func (d *DirectedDiffusion) reinforcePaths(p *scheduler.Proc) error {
	for _, n := range d.nw.Nodes() {
		if !n.Alive {
			continue
		}
		grads := d.gradients[n.Id]
		if grads == nil {
			continue
		}

		total := 0.0
		for _, nbId := range n.Neighbors {
			total += grads[nbId]
		}
		if total == 0 {
			total = 1
		}

		for _, nbId := range n.Neighbors {
			if _, ok := grads[nbId]; !ok {
				continue
			}
			grads[nbId] /= total

			neighbor := d.nw.Node(nbId)
			if n.Alive && neighbor.Alive {
				n.Transmit(ControlMsgSize, n.DistanceTo(neighbor))
				neighbor.Receive(ControlMsgSize)
			}
		}
	}

	p.Sleep(ddReinforceDelay)
	return nil
}

// Gradients exposes the gradient table for rendering, keyed by node id and
// upstream neighbor id. Consumers must not mutate it.
func (d *DirectedDiffusion) Gradients() map[NodeId]map[NodeId]float64 {
	return d.gradients
}
