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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

func TestLeachThreshold(t *testing.T) {
	l := NewLeach(testParams(lineNetwork([]float64{0}, 0, 0, 15), 1))

	// With p=0.05 the election period is 20 rounds; at round 20 the
	// modulus wraps and the threshold returns to p itself.
	l.currentRound = 1
	assert.InDelta(t, 0.05/(1-0.05), l.threshold(), 1e-12)
	l.currentRound = 19
	assert.InDelta(t, 0.05/(1-0.05*19), l.threshold(), 1e-12)
	l.currentRound = 20
	assert.InDelta(t, 0.05, l.threshold(), 1e-12)
}

func TestLeachSaturatedElection(t *testing.T) {
	nw := lineNetwork([]float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45}, 20, 0, 100)
	// p=0.5 at round 1 saturates the threshold at 1.0: every live node
	// must be elected.
	params := testParams(nw, 42)
	params.LeachP = 0.5
	l := NewLeach(params)
	l.Setup()

	nw.Node(3).Alive = false
	l.currentRound = 1
	l.electHeads()

	assert.Equal(t, 9, len(l.ClusterHeads()))
	for _, n := range nw.Nodes() {
		assert.Equal(t, n.Alive, n.IsClusterHead)
	}
}

func TestLeachFormClustersJoinsNearestHead(t *testing.T) {
	nw := lineNetwork([]float64{0, 10, 20, 30, 40}, 20, 0, 100)
	l := NewLeach(testParams(nw, 1))
	l.Setup()

	// Heads at the line's ends; everybody else joins the closer one.
	for _, chId := range []NodeId{0, 4} {
		nw.Node(chId).IsClusterHead = true
		l.clusterHeads = append(l.clusterHeads, chId)
	}
	l.formClusters()

	assert.Equal(t, NodeId(0), nw.Node(1).ClusterHead)
	// Node 2 is equidistant; the first head in election order wins.
	assert.Equal(t, NodeId(0), nw.Node(2).ClusterHead)
	assert.Equal(t, NodeId(4), nw.Node(3).ClusterHead)
	assert.Equal(t, []NodeId{1, 2}, l.Clusters()[0])
	assert.Equal(t, []NodeId{3}, l.Clusters()[4])
}

func TestLeachNoHeadsElected(t *testing.T) {
	nw := lineNetwork([]float64{0, 10, 20}, 20, 0, 100)
	l := NewLeach(testParams(nw, 1))
	l.Setup()

	l.formClusters()

	for _, n := range nw.Nodes() {
		assert.Equal(t, InvalidNodeId, n.ClusterHead)
	}
	assert.Equal(t, 0, len(l.Clusters()))
}

func TestLeachElectionDeterminism(t *testing.T) {
	run := func() []NodeId {
		nw := lineNetwork([]float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45}, 20, 0, 100)
		params := testParams(nw, 7)
		params.LeachP = 0.3
		l := NewLeach(params)
		l.Setup()

		l.currentRound = 2
		l.electHeads()
		return append([]NodeId{}, l.ClusterHeads()...)
	}

	assert.Equal(t, run(), run())
}

func TestLeachSteadyStateDeliversData(t *testing.T) {
	nw := lineNetwork([]float64{10, 15, 20, 25, 30}, 20, 0, 100)
	l := NewLeach(testParams(nw, 42))
	l.Setup()

	// One head with four members, bypassing the probabilistic election.
	nw.Node(2).IsClusterHead = true
	l.clusterHeads = []NodeId{2}
	l.clusters = map[NodeId][]NodeId{2: {0, 1, 3, 4}}
	for _, memberId := range l.clusters[2] {
		nw.Node(memberId).ClusterHead = 2
	}

	s := scheduler.NewSimulator()
	s.Spawn("leach-steady", l.steadyStatePhase)
	assert.Nil(t, s.Run(200))
	s.Stop()

	// One aggregated payload per frame: 4 members x 4000 bits, reduced 30%.
	assert.Equal(t, leachFramesPerRound, nw.BaseStation().PacketsReceived)
	assert.InDelta(t, float64(leachFramesPerRound)*4*4000*AggregationRatio,
		nw.BaseStation().DataReceived, 1e-6)
}
