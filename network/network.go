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

// Package network holds the physical topology of a sensor field: the node
// arena, the base station and the static neighbor graph. Nodes are addressed
// by their NodeId, which doubles as the arena index.
package network

import (
	"math/rand"

	"github.com/wsnlab/wsnsim/energy"
	"github.com/wsnlab/wsnsim/logger"
	. "github.com/wsnlab/wsnsim/types"
)

// Network is the immutable topology of one simulation run. Node positions and
// the neighbor graph are fixed at construction; only node energy and
// liveness change afterwards.
type Network struct {
	Width     float64
	Height    float64
	CommRange float64

	nodes []*SensorNode
	bs    *BaseStation
}

// NewNetwork places numNodes nodes uniformly at random on the
// width x height field and connects every pair within commRange. Node
// coordinates are drawn from rnd in arena order, x before y, so a fixed seed
// always yields the same topology.
func NewNetwork(width float64, height float64, numNodes int, bsX float64, bsY float64,
	commRange float64, model *energy.Model, rnd *rand.Rand) *Network {
	nw := &Network{
		Width:     width,
		Height:    height,
		CommRange: commRange,
		nodes:     make([]*SensorNode, 0, numNodes),
		bs:        NewBaseStation(bsX, bsY),
	}

	for id := 0; id < numNodes; id++ {
		x := rnd.Float64() * width
		y := rnd.Float64() * height
		nw.nodes = append(nw.nodes, NewSensorNode(id, x, y, DefaultInitialEnergy, model))
	}
	nw.buildNeighborGraph()

	logger.Debugf("network: %d nodes on %gx%g field, comm range %g", numNodes, width, height, commRange)
	return nw
}

// Position is an explicit node placement for NewNetworkWithPositions.
type Position struct {
	X float64
	Y float64
}

// NewNetworkWithPositions builds a network with explicitly placed nodes
// instead of random placement. Node ids follow the position order.
func NewNetworkWithPositions(width float64, height float64, positions []Position,
	bsX float64, bsY float64, commRange float64, model *energy.Model) *Network {
	nw := &Network{
		Width:     width,
		Height:    height,
		CommRange: commRange,
		nodes:     make([]*SensorNode, 0, len(positions)),
		bs:        NewBaseStation(bsX, bsY),
	}
	for id, pos := range positions {
		nw.nodes = append(nw.nodes, NewSensorNode(id, pos.X, pos.Y, DefaultInitialEnergy, model))
	}
	nw.buildNeighborGraph()
	return nw
}

// buildNeighborGraph links every pair of nodes within communication range.
// Neighbor lists come out sorted by NodeId because pairs are visited in
// ascending order.
func (nw *Network) buildNeighborGraph() {
	for i := 0; i < len(nw.nodes); i++ {
		for j := i + 1; j < len(nw.nodes); j++ {
			if nw.nodes[i].DistanceTo(nw.nodes[j]) <= nw.CommRange {
				nw.nodes[i].Neighbors = append(nw.nodes[i].Neighbors, nw.nodes[j].Id)
				nw.nodes[j].Neighbors = append(nw.nodes[j].Neighbors, nw.nodes[i].Id)
			}
		}
	}
}

// Nodes returns the node arena, indexed by NodeId. Callers must not reorder it.
func (nw *Network) Nodes() []*SensorNode {
	return nw.nodes
}

// Node returns the node with the given id, or nil if out of range.
func (nw *Network) Node(id NodeId) *SensorNode {
	if id < 0 || id >= len(nw.nodes) {
		return nil
	}
	return nw.nodes[id]
}

func (nw *Network) NodeCount() int {
	return len(nw.nodes)
}

func (nw *Network) BaseStation() *BaseStation {
	return nw.bs
}

// AliveCount returns the number of nodes still alive.
func (nw *Network) AliveCount() int {
	count := 0
	for _, n := range nw.nodes {
		if n.Alive {
			count++
		}
	}
	return count
}

// TotalEnergy returns the summed remaining energy across all nodes.
func (nw *Network) TotalEnergy() float64 {
	total := 0.0
	for _, n := range nw.nodes {
		total += n.Energy
	}
	return total
}
