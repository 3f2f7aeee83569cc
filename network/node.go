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

package network

import (
	"math"

	"github.com/wsnlab/wsnsim/energy"
	. "github.com/wsnlab/wsnsim/types"
)

// DefaultInitialEnergy is the normalized energy budget each node starts with.
const DefaultInitialEnergy = 1.0

// SensorNode is a single network participant. Its energy and Alive flag are
// the sole source of truth for its lifecycle: every radio or sensing
// operation debits energy through the dead/alive gate, and once a node dies
// it never participates again.
type SensorNode struct {
	Id        NodeId
	X         float64
	Y         float64
	Energy    float64
	Alive     bool
	Neighbors []NodeId

	// Cluster membership, owned by cluster-based protocols and reset
	// every round. InvalidNodeId means no cluster head assigned.
	IsClusterHead bool
	ClusterHead   NodeId

	model *energy.Model
}

// NewSensorNode creates a live node at (x, y) with the given energy budget.
func NewSensorNode(id NodeId, x float64, y float64, initialEnergy float64, model *energy.Model) *SensorNode {
	return &SensorNode{
		Id:          id,
		X:           x,
		Y:           y,
		Energy:      initialEnergy,
		Alive:       true,
		ClusterHead: InvalidNodeId,
		model:       model,
	}
}

// consume debits cost from the node's energy. A dead node refuses the
// operation, and a cost exceeding the remaining energy drains the node and
// kills it without performing the operation.
func (n *SensorNode) consume(cost float64) bool {
	if !n.Alive {
		return false
	}
	if n.Energy < cost {
		n.Energy = 0
		n.Alive = false
		return false
	}
	n.Energy -= cost
	if n.Energy <= 0 {
		n.Energy = 0
		n.Alive = false
	}
	return true
}

// Transmit sends dataSize bits over distance meters. Returns false if the
// node is dead or ran out of energy.
func (n *SensorNode) Transmit(dataSize float64, distance float64) bool {
	return n.consume(n.model.TxCost(dataSize, distance))
}

// Receive accepts dataSize bits from a neighbor.
func (n *SensorNode) Receive(dataSize float64) bool {
	return n.consume(n.model.RxCost(dataSize))
}

// Sense samples dataSize bits of environment data.
func (n *SensorNode) Sense(dataSize float64) bool {
	return n.consume(n.model.SenseCost(dataSize))
}

// AggregateData fuses dataSize bits of collected data.
func (n *SensorNode) AggregateData(dataSize float64) bool {
	return n.consume(n.model.AggregateCost(dataSize))
}

// DistanceTo returns the Euclidean distance to another node.
func (n *SensorNode) DistanceTo(other *SensorNode) float64 {
	return n.DistanceToPoint(other.X, other.Y)
}

// DistanceToPoint returns the Euclidean distance to an arbitrary position.
func (n *SensorNode) DistanceToPoint(x float64, y float64) float64 {
	dx := n.X - x
	dy := n.Y - y
	return math.Sqrt(dx*dx + dy*dy)
}
