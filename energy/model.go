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

// Package energy implements the radio energy consumption model of a sensor
// node. The model is stateless: all functions are pure in (data size, distance).
//
// Transmission uses a single-regime quadratic path-loss model,
//
//	cost = size*ElecEnergy + size*AmpEnergy*distance^2
//
// which is the canonical model of this simulator. A two-regime free-space vs.
// multipath model exists in the literature but is deliberately not used here.
package energy

/*
 * Default consumption parameters of a first-order radio model.
 * Data sizes in bits, distances in meters, resulting energy in Joules.
 */
const (
	DefaultElecEnergy        float64 = 50e-9   // J/bit, transmitter/receiver electronics
	DefaultAmpEnergy         float64 = 100e-12 // J/bit/m^2, transmit amplifier
	DefaultAggregationEnergy float64 = 5e-9    // J/bit, data aggregation
	DefaultSensingEnergy     float64 = 5e-9    // J/bit, environment sensing
)

// Model holds the per-operation energy parameters of a node's radio and
// sensing hardware.
type Model struct {
	ElecEnergy        float64
	AmpEnergy         float64
	AggregationEnergy float64
	SensingEnergy     float64
}

// DefaultModel returns the model with the default first-order radio parameters.
func DefaultModel() *Model {
	return &Model{
		ElecEnergy:        DefaultElecEnergy,
		AmpEnergy:         DefaultAmpEnergy,
		AggregationEnergy: DefaultAggregationEnergy,
		SensingEnergy:     DefaultSensingEnergy,
	}
}

// TxCost is the energy required to transmit dataSize bits over distance meters.
func (m *Model) TxCost(dataSize float64, distance float64) float64 {
	return m.ElecEnergy*dataSize + m.AmpEnergy*dataSize*distance*distance
}

// RxCost is the energy required to receive dataSize bits.
func (m *Model) RxCost(dataSize float64) float64 {
	return m.ElecEnergy * dataSize
}

// SenseCost is the energy required to sense dataSize bits of environment data.
func (m *Model) SenseCost(dataSize float64) float64 {
	return m.SensingEnergy * dataSize
}

// AggregateCost is the energy required to aggregate dataSize bits.
func (m *Model) AggregateCost(dataSize float64) float64 {
	return m.AggregationEnergy * dataSize
}
