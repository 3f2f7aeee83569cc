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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/wsnlab/wsnsim/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, 100, cfg.NumNodes)
	assert.Equal(t, 50.0, cfg.BaseStationX)
	assert.Equal(t, 50.0, cfg.BaseStationY)
	assert.Equal(t, ProtocolLeach, cfg.Protocol)
	assert.Equal(t, SimTime(1000), cfg.SimulationTime)
}

func TestPresetConfigs(t *testing.T) {
	for _, name := range PresetNames {
		cfg, err := PresetConfig(name)
		assert.Nil(t, err, "preset %s", name)
		assert.Nil(t, cfg.Validate(), "preset %s", name)
		// The sink stays centered whatever the field size.
		assert.Equal(t, cfg.Width/2, cfg.BaseStationX)
		assert.Equal(t, cfg.Height/2, cfg.BaseStationY)
	}

	small, _ := PresetConfig("small")
	assert.Equal(t, 30, small.NumNodes)
	assert.Equal(t, 50.0, small.Width)
	assert.Equal(t, 20.0, small.CommRange)

	large, _ := PresetConfig("large")
	assert.Equal(t, 300, large.NumNodes)

	highTraffic, _ := PresetConfig("high_traffic")
	assert.Equal(t, 8000.0, highTraffic.PacketSize)

	_, err := PresetConfig("gigantic")
	assert.NotNil(t, err)
}

func TestReadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "wsnsim")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "scenario.yaml")
	content := "num_nodes: 25\nprotocol: GEAR\nseed: 7\n"
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0644))

	cfg, err := ReadConfigFile(path)
	assert.Nil(t, err)
	assert.Equal(t, 25, cfg.NumNodes)
	assert.Equal(t, ProtocolGear, cfg.Protocol)
	assert.Equal(t, int64(7), cfg.Seed)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 100.0, cfg.Width)
	assert.Equal(t, 4000.0, cfg.PacketSize)

	_, err = ReadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.NotNil(t, err)
}

func TestConfigValidation(t *testing.T) {
	bad := func(mutate func(*Config)) {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.NotNil(t, cfg.Validate())
	}

	bad(func(c *Config) { c.Protocol = "FLOODING" })
	bad(func(c *Config) { c.NumNodes = 0 })
	bad(func(c *Config) { c.Width = -1 })
	bad(func(c *Config) { c.CommRange = 0 })
	bad(func(c *Config) { c.PacketSize = 0 })
	bad(func(c *Config) { c.LeachP = 0 })
	bad(func(c *Config) { c.LeachP = 1 })
	bad(func(c *Config) { c.LeachP = -0.05 })
	bad(func(c *Config) { c.LeachRoundTime = 0 })
	bad(func(c *Config) { c.DdInterestInterval = 0 })
	bad(func(c *Config) { c.DdReinforcementInterval = 0 })
	bad(func(c *Config) { c.GearInterestInterval = 0 })
	bad(func(c *Config) { c.PegasisChainInterval = 0 })
}

// A scenario file with a zero interval must be rejected at construction, not
// only when the protocol loop first divides by it.
func TestZeroIntervalRejectedAtConstruction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Protocol = ProtocolDirectedDiffusion
	cfg.DdReinforcementInterval = 0

	sim, err := New(cfg)
	assert.Nil(t, sim)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "dd_reinforcement_interval")
}
