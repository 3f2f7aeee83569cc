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

// Package types holds identifiers and enums shared across the simulator packages.
package types

// NodeId is the index of a sensor node in the simulation's node arena.
type NodeId = int

// SimTime is a simulated-time instant, in simulated time units. It has no
// relation to wall-clock time; only scheduled event timeouts advance it.
type SimTime = uint64

const (
	InvalidNodeId NodeId = -1

	// BaseStationId identifies the sink in log output. The base station is
	// not part of the node arena.
	BaseStationId = "BS"
)

// ProtocolType selects one of the supported routing protocols.
type ProtocolType string

const (
	ProtocolLeach             ProtocolType = "LEACH"
	ProtocolDirectedDiffusion ProtocolType = "DirectedDiffusion"
	ProtocolGear              ProtocolType = "GEAR"
	ProtocolPegasis           ProtocolType = "PEGASIS"
)

// ProtocolTypes lists all supported protocols in canonical order.
var ProtocolTypes = []ProtocolType{
	ProtocolLeach,
	ProtocolDirectedDiffusion,
	ProtocolGear,
	ProtocolPegasis,
}

func (pt ProtocolType) Valid() bool {
	for _, t := range ProtocolTypes {
		if pt == t {
			return true
		}
	}
	return false
}

func (pt ProtocolType) String() string {
	return string(pt)
}
