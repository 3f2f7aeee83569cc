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
	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

// MetricsInterval is the sampling cadence of the metrics collector, in
// simulated time units. It is independent of any protocol's round length.
const MetricsInterval SimTime = 10

// Metrics is the aggregate outcome of a simulation run. The sampled
// sequences share one index: AliveNodes[i] and EnergyLevels[i] were taken at
// TimePoints[i].
type Metrics struct {
	TimePoints   []SimTime `yaml:"time_points"`
	AliveNodes   []int     `yaml:"alive_nodes"`
	EnergyLevels []float64 `yaml:"energy_levels"`

	PacketsDelivered    int     `yaml:"packets_delivered"`
	NetworkLifetime     SimTime `yaml:"network_lifetime"`
	TotalEnergyConsumed float64 `yaml:"total_energy_consumed"`
}

// collectMetrics is the sampling process registered alongside the protocol.
// Every MetricsInterval it snapshots the alive count and total remaining
// energy, and latches the network lifetime the first time no node is alive.
func (s *Simulation) collectMetrics(p *scheduler.Proc) error {
	for {
		alive := s.nw.AliveCount()
		s.metrics.TimePoints = append(s.metrics.TimePoints, p.Now())
		s.metrics.AliveNodes = append(s.metrics.AliveNodes, alive)
		s.metrics.EnergyLevels = append(s.metrics.EnergyLevels, s.nw.TotalEnergy())

		if alive == 0 && !s.lifetimeSet {
			s.metrics.NetworkLifetime = p.Now()
			s.lifetimeSet = true
			logger.Infof("network died at t=%d", p.Now())
		}

		if !p.Sleep(MetricsInterval) {
			return nil
		}
	}
}
