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
	. "github.com/wsnlab/wsnsim/types"
)

// BaseStation is the data sink. It is mains-powered and never fails, so
// receiving data only updates the delivery counters.
type BaseStation struct {
	Id              string
	X               float64
	Y               float64
	DataReceived    float64
	PacketsReceived int
}

func NewBaseStation(x float64, y float64) *BaseStation {
	return &BaseStation{
		Id: BaseStationId,
		X:  x,
		Y:  y,
	}
}

// ReceiveData records the delivery of one packet of dataSize bits.
func (bs *BaseStation) ReceiveData(dataSize float64) {
	bs.DataReceived += dataSize
	bs.PacketsReceived++
}

// DistanceTo returns the Euclidean distance from the sink to a node.
func (bs *BaseStation) DistanceTo(n *SensorNode) float64 {
	return n.DistanceToPoint(bs.X, bs.Y)
}
