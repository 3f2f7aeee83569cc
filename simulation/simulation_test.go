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

package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/wsnlab/wsnsim/types"
)

// smallConfig is a 10-node fully connected network with the sink centered.
func smallConfig(protocol ProtocolType) *Config {
	cfg := DefaultConfig()
	cfg.NumNodes = 10
	cfg.CommRange = 150
	cfg.SimulationTime = 200
	cfg.Protocol = protocol
	return cfg
}

func TestSimulationEndToEndLeach(t *testing.T) {
	s, err := New(smallConfig(ProtocolLeach))
	assert.Nil(t, err)

	m, err := s.Run()
	assert.Nil(t, err)

	assert.Equal(t, 10, m.AliveNodes[0])
	assert.True(t, m.PacketsDelivered >= 0)
	assert.True(t, m.TotalEnergyConsumed >= 0)

	// Sampling cadence and monotonically non-increasing energy.
	assert.True(t, len(m.TimePoints) > 1)
	for i, tp := range m.TimePoints {
		assert.Equal(t, SimTime(i)*MetricsInterval, tp)
		if i > 0 {
			assert.True(t, m.EnergyLevels[i] <= m.EnergyLevels[i-1])
			assert.True(t, m.AliveNodes[i] <= m.AliveNodes[i-1])
		}
	}
	assert.Equal(t, len(m.TimePoints), len(m.AliveNodes))
	assert.Equal(t, len(m.TimePoints), len(m.EnergyLevels))
}

// NetworkLifetime is the first sampled instant with no node alive, latched
// exactly once; a network that survives the whole run keeps lifetime zero.
func TestNetworkLifetimeLatch(t *testing.T) {
	// A surviving network reports zero lifetime.
	s, err := New(smallConfig(ProtocolLeach))
	assert.Nil(t, err)
	m, err := s.Run()
	assert.Nil(t, err)
	assert.True(t, m.AliveNodes[len(m.AliveNodes)-1] > 0)
	assert.Equal(t, SimTime(0), m.NetworkLifetime)

	// Batteries run flat mid-run: every sample from the next one on sees
	// zero alive nodes.
	s, err = New(smallConfig(ProtocolLeach))
	assert.Nil(t, err)
	assert.Nil(t, s.AdvanceBy(95))
	for _, n := range s.Nodes() {
		n.Energy = 0
		n.Alive = false
	}
	assert.Nil(t, s.AdvanceBy(105))

	m = s.Metrics()
	died := -1
	for i, alive := range m.AliveNodes {
		if alive == 0 {
			died = i
			break
		}
	}
	assert.True(t, died > 0)
	assert.Equal(t, m.TimePoints[died], m.NetworkLifetime)
	assert.Equal(t, SimTime(100), m.NetworkLifetime)
	for _, alive := range m.AliveNodes[died:] {
		assert.Equal(t, 0, alive)
	}

	// Later all-dead samples must not move the latch.
	assert.Nil(t, s.AdvanceBy(50))
	assert.Equal(t, SimTime(100), s.Metrics().NetworkLifetime)
}

func TestSimulationAllProtocols(t *testing.T) {
	for _, protocol := range ProtocolTypes {
		s, err := New(smallConfig(protocol))
		assert.Nil(t, err)

		m, err := s.Run()
		assert.Nil(t, err, "protocol %s", protocol)
		assert.Equal(t, 10, m.AliveNodes[0], "protocol %s", protocol)
		assert.True(t, m.TotalEnergyConsumed >= 0, "protocol %s", protocol)
	}
}

func TestSimulationDeterminism(t *testing.T) {
	for _, protocol := range ProtocolTypes {
		run := func() *Metrics {
			s, err := New(smallConfig(protocol))
			assert.Nil(t, err)
			m, err := s.Run()
			assert.Nil(t, err)
			return m
		}

		a, b := run(), run()
		assert.Equal(t, a, b, "protocol %s", protocol)
	}
}

func TestSimulationUnknownProtocol(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Protocol = "AODV"

	s, err := New(cfg)
	assert.Nil(t, s)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "AODV")
}

func TestSimulationIncrementalStepping(t *testing.T) {
	s, err := New(smallConfig(ProtocolPegasis))
	assert.Nil(t, err)
	defer s.Stop()

	assert.Equal(t, SimTime(0), s.Time())
	assert.Nil(t, s.AdvanceBy(50))
	assert.Equal(t, SimTime(50), s.Time())
	assert.Nil(t, s.AdvanceBy(50))
	assert.Equal(t, SimTime(100), s.Time())

	m := s.Metrics()
	assert.Equal(t, 11, len(m.TimePoints)) // samples at 0,10,...,100
}

func TestSimulationIntrospection(t *testing.T) {
	s, err := New(smallConfig(ProtocolGear))
	assert.Nil(t, err)
	defer s.Stop()

	assert.Equal(t, 10, len(s.Nodes()))
	assert.NotNil(t, s.Node(0))
	assert.Nil(t, s.Node(10))
	assert.NotNil(t, s.BaseStation())
	assert.Equal(t, "GEAR", s.Protocol().Name())
	assert.NotNil(t, s.Network())
	assert.NotNil(t, s.Config())
}
