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

// Package routing implements the four routing protocols of the simulator:
// LEACH, Directed Diffusion, GEAR and PEGASIS. Every protocol runs as a
// single scheduler process that drives node transmit/receive/sense calls and
// suspends at protocol-defined timeout points.
//
// Protocols hold no node pointers in their routing state: cluster
// memberships, gradients, routes and chains all reference nodes by NodeId
// into the network arena, and liveness is re-checked after every suspension.
package routing

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/wsnlab/wsnsim/network"
	"github.com/wsnlab/wsnsim/scheduler"
	. "github.com/wsnlab/wsnsim/types"
)

// Message sizes in bits and the shared delivery parameters of all protocols.
const (
	// BaseStationRange is the distance within which a node can deliver
	// directly to the base station. The base station's radio is assumed
	// stronger than a sensor node's.
	BaseStationRange = 20.0

	// ControlMsgSize is the size of small control messages (broadcasts,
	// joins, reinforcements, route discovery).
	ControlMsgSize = 50.0

	// InterestMsgSize is the size of an interest packet.
	InterestMsgSize = 100.0

	// ScheduleMsgSize is the size of a TDMA schedule message.
	ScheduleMsgSize = 100.0

	// AggregationRatio is the output fraction of aggregated data, a 30%
	// volume reduction.
	AggregationRatio = 0.7
)

// Protocol is the common contract of all routing protocols. Setup is called
// once before the scheduler starts; Run is the protocol's scheduler process
// and only returns on simulation shutdown or an internal fault.
type Protocol interface {
	Name() string
	Setup()
	Run(p *scheduler.Proc) error
}

// Params bundles the dependencies and tuning knobs a protocol is built from.
// Only the knobs of the selected protocol are read.
type Params struct {
	Network    *network.Network
	PacketSize float64
	Rand       *rand.Rand

	// LEACH
	LeachP         float64
	LeachRoundTime SimTime

	// Directed Diffusion
	InterestInterval      SimTime
	ReinforcementInterval SimTime

	// GEAR
	GearInterestInterval SimTime

	// PEGASIS
	ChainReconstructionInterval SimTime
}

// New creates the protocol selected by protocolType. An unknown type is a
// configuration error.
func New(protocolType ProtocolType, params Params) (Protocol, error) {
	switch protocolType {
	case ProtocolLeach:
		return NewLeach(params), nil
	case ProtocolDirectedDiffusion:
		return NewDirectedDiffusion(params), nil
	case ProtocolGear:
		return NewGear(params), nil
	case ProtocolPegasis:
		return NewPegasis(params), nil
	default:
		return nil, errors.Errorf("unknown protocol type %q", protocolType)
	}
}
