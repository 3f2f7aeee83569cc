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

// Package prng provides the simulator's pseudo-random number sources. A single
// root seed fans out into one sub-generator per concern, so that draws made by
// one concern (e.g. node placement) never shift the draw sequence of another
// (e.g. cluster-head election). All protocol draws are consumed in node-arena
// order within a cycle, which pins reproducibility for a fixed seed.
package prng

import (
	"math/rand"
	"time"
)

type RandomSeed = int64

// Source bundles the per-concern generators of one simulation instance. Two
// simulations with equal root seeds produce identical draw sequences.
type Source struct {
	rootSeed RandomSeed
	topology *rand.Rand
	protocol *rand.Rand
}

// NewSource creates the generators for a simulation, either with a fixed root
// seed (rootSeed != 0) or a 'random' time-based root seed (if rootSeed == 0).
func NewSource(rootSeed RandomSeed) *Source {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	root := rand.New(rand.NewSource(rootSeed))

	return &Source{
		rootSeed: rootSeed,
		topology: rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e10)))),
		protocol: rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e10)))),
	}
}

// RootSeed returns the effective root seed of this source.
func (s *Source) RootSeed() RandomSeed {
	return s.rootSeed
}

// Topology is the generator used for node placement at simulation setup.
func (s *Source) Topology() *rand.Rand {
	return s.topology
}

// Protocol is the generator used for all probabilistic protocol behavior
// (cluster-head election, event detection).
func (s *Source) Protocol() *rand.Rand {
	return s.protocol
}
