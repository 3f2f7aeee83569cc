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

// Package simulation wires a full simulation run together: configuration,
// node placement, protocol instantiation, process registration and metrics
// collection.
package simulation

import (
	"github.com/pkg/errors"

	"github.com/wsnlab/wsnsim/energy"
	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/network"
	"github.com/wsnlab/wsnsim/prng"
	"github.com/wsnlab/wsnsim/routing"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

// Simulation owns one simulated network and the scheduler driving it.
type Simulation struct {
	cfg      *Config
	src      *prng.Source
	nw       *network.Network
	sched    *scheduler.Simulator
	protocol routing.Protocol

	initialEnergy float64
	metrics       Metrics
	lifetimeSet   bool
	stopped       bool
}

// New builds a simulation from the configuration: it validates the config,
// seeds the random sources, places the nodes, instantiates the protocol and
// registers the protocol loop and the metrics collector, in that order, as
// scheduler processes.
func New(cfg *Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	src := prng.NewSource(cfg.Seed)
	nw := network.NewNetwork(cfg.Width, cfg.Height, cfg.NumNodes,
		cfg.BaseStationX, cfg.BaseStationY, cfg.CommRange,
		energy.DefaultModel(), src.Topology())

	protocol, err := routing.New(cfg.Protocol, routing.Params{
		Network:                     nw,
		PacketSize:                  cfg.PacketSize,
		Rand:                        src.Protocol(),
		LeachP:                      cfg.LeachP,
		LeachRoundTime:              cfg.LeachRoundTime,
		InterestInterval:            cfg.DdInterestInterval,
		ReinforcementInterval:       cfg.DdReinforcementInterval,
		GearInterestInterval:        cfg.GearInterestInterval,
		ChainReconstructionInterval: cfg.PegasisChainInterval,
	})
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:           cfg,
		src:           src,
		nw:            nw,
		sched:         scheduler.NewSimulator(),
		protocol:      protocol,
		initialEnergy: nw.TotalEnergy(),
	}

	protocol.Setup()

	// Registration order is the tie-break order at equal instants and
	// must stay fixed for reproducibility.
	s.sched.Spawn(protocol.Name(), protocol.Run)
	s.sched.Spawn("metrics", s.collectMetrics)

	logger.Infof("simulation created: protocol=%s nodes=%d seed=%d", protocol.Name(), cfg.NumNodes, src.RootSeed())
	return s, nil
}

// Run drives the simulation to completion and returns the final metrics.
// The simulation cannot be advanced further afterwards.
func (s *Simulation) Run() (*Metrics, error) {
	if s.sched.Now() < s.cfg.SimulationTime {
		if err := s.AdvanceBy(s.cfg.SimulationTime - s.sched.Now()); err != nil {
			s.Stop()
			return nil, err
		}
	}
	s.Stop()
	return s.Metrics(), nil
}

// AdvanceBy moves simulated time forward by delta, processing all events due
// in between. Used by the interactive console for incremental stepping.
func (s *Simulation) AdvanceBy(delta SimTime) error {
	return s.sched.Run(s.sched.Now() + delta)
}

// Stop shuts the scheduler down and unwinds all processes. Idempotent.
func (s *Simulation) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.sched.Stop()
}

// Time returns the current simulated time.
func (s *Simulation) Time() SimTime {
	return s.sched.Now()
}

// Metrics returns a snapshot of the metrics collected so far, with the
// delivery and consumption totals computed at call time.
func (s *Simulation) Metrics() *Metrics {
	m := s.metrics
	m.TimePoints = append([]SimTime{}, s.metrics.TimePoints...)
	m.AliveNodes = append([]int{}, s.metrics.AliveNodes...)
	m.EnergyLevels = append([]float64{}, s.metrics.EnergyLevels...)
	m.PacketsDelivered = s.nw.BaseStation().PacketsReceived
	m.TotalEnergyConsumed = s.initialEnergy - s.nw.TotalEnergy()
	return &m
}

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *Config {
	return s.cfg
}

// Nodes exposes the node arena for read-only introspection.
func (s *Simulation) Nodes() []*network.SensorNode {
	return s.nw.Nodes()
}

// Node returns the node with the given id, or nil.
func (s *Simulation) Node(id NodeId) *network.SensorNode {
	return s.nw.Node(id)
}

// BaseStation exposes the sink for read-only introspection.
func (s *Simulation) BaseStation() *network.BaseStation {
	return s.nw.BaseStation()
}

// Protocol exposes the running protocol instance; type-assert to the
// concrete protocol for protocol-specific state (chain, clusters, regions,
// gradients).
func (s *Simulation) Protocol() routing.Protocol {
	return s.protocol
}

// Network exposes the topology for read-only introspection.
func (s *Simulation) Network() *network.Network {
	return s.nw
}
