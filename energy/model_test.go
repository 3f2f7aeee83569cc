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

package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxCost(t *testing.T) {
	m := DefaultModel()

	assert.Equal(t, 0.0, m.TxCost(0, 100))

	// At distance 0 only the electronics term remains.
	assert.InDelta(t, 4000*50e-9, m.TxCost(4000, 0), 1e-12)

	// Quadratic path-loss term.
	cost10 := m.TxCost(4000, 10)
	cost20 := m.TxCost(4000, 20)
	assert.InDelta(t, 4000*50e-9+4000*100e-12*100, cost10, 1e-12)
	assert.InDelta(t, 4000*100e-12*300, cost20-cost10, 1e-12)
}

func TestRxSenseAggregateCosts(t *testing.T) {
	m := DefaultModel()

	assert.InDelta(t, 4000*50e-9, m.RxCost(4000), 1e-12)
	assert.InDelta(t, 4000*5e-9, m.SenseCost(4000), 1e-12)
	assert.InDelta(t, 4000*5e-9, m.AggregateCost(4000), 1e-12)

	// Receive cost is independent of distance by construction; it must equal
	// the transmit cost at distance zero.
	assert.Equal(t, m.TxCost(1234, 0), m.RxCost(1234))
}
