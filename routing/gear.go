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
	"sort"

	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/network"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

const (
	gearDetectProbability = 0.05
	gearRegionRadius      = 15.0
	gearInterestDelay     = 20
	gearForwardDelay      = 10
	gearLoopDelay         = 10
)

// TargetRegion is a circular geofence the sink is interested in.
type TargetRegion struct {
	X      float64
	Y      float64
	Radius float64
}

// Contains reports whether the node lies inside the region.
func (r TargetRegion) Contains(n *network.SensorNode) bool {
	return n.DistanceToPoint(r.X, r.Y) <= r.Radius
}

// Gear implements Geographic and Energy Aware Routing. The sink periodically
// establishes routes to nodes inside fixed target regions with a weighted
// breadth-first discovery that prefers neighbors combining geographic
// progress with remaining energy; detected events then follow the cached
// next-hop table back to the sink.
type Gear struct {
	nw         *network.Network
	packetSize float64
	rnd        *rand.Rand

	interestInterval SimTime

	targetRegions []TargetRegion
	routes        map[NodeId]NodeId
}

func NewGear(params Params) *Gear {
	return &Gear{
		nw:               params.Network,
		packetSize:       params.PacketSize,
		rnd:              params.Rand,
		interestInterval: params.GearInterestInterval,
		routes:           map[NodeId]NodeId{},
	}
}

func (g *Gear) Name() string {
	return string(ProtocolGear)
}

func (g *Gear) Setup() {
	g.targetRegions = []TargetRegion{
		{g.nw.Width * 0.75, g.nw.Height * 0.75, gearRegionRadius},
		{g.nw.Width * 0.25, g.nw.Height * 0.25, gearRegionRadius},
	}
}

func (g *Gear) Run(p *scheduler.Proc) error {
	for {
		if p.Now()%g.interestInterval == 0 {
			if !p.Join(p.Spawn("gear-interest", g.propagateInterest)) {
				return nil
			}
		}

		if !p.Join(p.Spawn("gear-forward", g.detectAndForward)) {
			return nil
		}

		if !p.Sleep(gearLoopDelay) {
			return nil
		}
	}
}

// propagateInterest discovers a route from the sink to every live node in a
// target region and caches the reversed path as next-hop entries.
func (g *Gear) propagateInterest(p *scheduler.Proc) error {
	bs := g.nw.BaseStation()

	for _, region := range g.targetRegions {
		for _, n := range g.nw.Nodes() {
			if !n.Alive || !region.Contains(n) {
				continue
			}

			route := g.DiscoverRoute(bs.X, bs.Y, n)
			if len(route) < 2 {
				continue
			}

			// Walk the path sink-side first so data can retrace it
			// back toward the sink.
			current := n.Id
			for i := len(route) - 2; i >= 0; i-- {
				g.routes[current] = route[i]
				current = route[i]
			}
		}
	}
	logger.Debugf("GEAR: %d cached next hops after interest propagation", len(g.routes))

	p.Sleep(gearInterestDelay)
	return nil
}

// DiscoverRoute finds a path from the live node closest to (startX, startY)
// to the target node. The search is breadth first, expanding each node's
// unvisited live neighbors in descending order of
// (geographic progress toward target) * (neighbor energy), and pays a
// control-message exchange per expanded edge. Returns the node ids of the
// path, or nil if the target is unreachable.
func (g *Gear) DiscoverRoute(startX float64, startY float64, target *network.SensorNode) []NodeId {
	start := g.nearestLiveNode(startX, startY)
	if start == nil {
		return nil
	}

	queue := []NodeId{start.Id}
	visited := map[NodeId]bool{start.Id: true}
	prev := map[NodeId]NodeId{}

	for len(queue) > 0 {
		currentId := queue[0]
		queue = queue[1:]
		current := g.nw.Node(currentId)

		if currentId == target.Id {
			var path []NodeId
			for id := currentId; ; id = prev[id] {
				path = append(path, id)
				if id == start.Id {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		type scored struct {
			id   NodeId
			cost float64
		}
		var candidates []scored
		currentDistance := current.DistanceTo(target)
		for _, nbId := range current.Neighbors {
			neighbor := g.nw.Node(nbId)
			if !neighbor.Alive || visited[nbId] {
				continue
			}
			progress := currentDistance - neighbor.DistanceTo(target)
			candidates = append(candidates, scored{nbId, progress * neighbor.Energy})
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].cost > candidates[j].cost
		})

		for _, c := range candidates {
			queue = append(queue, c.id)
			visited[c.id] = true
			prev[c.id] = currentId

			neighbor := g.nw.Node(c.id)
			current.Transmit(ControlMsgSize, current.DistanceTo(neighbor))
			neighbor.Receive(ControlMsgSize)
		}
	}

	return nil
}

// nearestLiveNode returns the live node closest to the given position, or
// nil if every node is dead.
func (g *Gear) nearestLiveNode(x float64, y float64) *network.SensorNode {
	minDistance := math.Inf(1)
	var nearest *network.SensorNode
	for _, n := range g.nw.Nodes() {
		if !n.Alive {
			continue
		}
		if d := n.DistanceToPoint(x, y); d < minDistance {
			minDistance = d
			nearest = n
		}
	}
	return nearest
}

// detectAndForward lets nodes inside the target regions sense events and
// forwards the data hop by hop along the cached routes, repairing a route on
// demand when a cached next hop has died.
func (g *Gear) detectAndForward(p *scheduler.Proc) error {
	bs := g.nw.BaseStation()

	for _, region := range g.targetRegions {
		for _, n := range g.nw.Nodes() {
			if !n.Alive || !region.Contains(n) {
				continue
			}
			if g.rnd.Float64() >= gearDetectProbability {
				continue
			}

			n.Sense(g.packetSize)

			current := n
			for {
				nextId, ok := g.routes[current.Id]
				if !ok {
					break
				}
				nextHop := g.nw.Node(nextId)

				if !nextHop.Alive {
					nextHop = g.repairRoute(current)
					if nextHop == nil {
						break
					}
				}

				if !current.Transmit(g.packetSize, current.DistanceTo(nextHop)) {
					break
				}
				if !nextHop.Receive(g.packetSize) {
					break
				}

				current = nextHop

				if distance := bs.DistanceTo(current); distance <= BaseStationRange {
					if current.Transmit(g.packetSize, distance) {
						bs.ReceiveData(g.packetSize)
					}
					break
				}
			}
		}
	}

	p.Sleep(gearForwardDelay)
	return nil
}

// repairRoute rediscovers a next hop for a node whose cached next hop has
// died, aiming at the live node closest to the sink. Returns the new next
// hop, or nil if no route exists.
func (g *Gear) repairRoute(from *network.SensorNode) *network.SensorNode {
	bs := g.nw.BaseStation()
	target := g.nearestLiveNode(bs.X, bs.Y)
	if target == nil {
		return nil
	}

	route := g.DiscoverRoute(from.X, from.Y, target)
	if len(route) < 2 {
		return nil
	}
	g.routes[from.Id] = route[1]
	return g.nw.Node(route[1])
}

// TargetRegions returns the geofences established at setup.
func (g *Gear) TargetRegions() []TargetRegion {
	return g.targetRegions
}

// Routes returns the cached next-hop table. Consumers must not mutate it.
func (g *Gear) Routes() map[NodeId]NodeId {
	return g.routes
}
