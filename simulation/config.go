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

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wsnlab/wsnsim/prng"
	. "github.com/wsnlab/wsnsim/types"
)

const (
	DefaultWidth          = 100.0
	DefaultHeight         = 100.0
	DefaultNumNodes       = 100
	DefaultCommRange      = 30.0
	DefaultSimulationTime = 1000
	DefaultPacketSize     = 4000.0
	DefaultSeed           = 42
)

// Config holds everything a simulation run is parameterized by. The zero
// value is not usable; start from DefaultConfig or a preset.
type Config struct {
	Width          float64         `yaml:"width"`
	Height         float64         `yaml:"height"`
	NumNodes       int             `yaml:"num_nodes"`
	BaseStationX   float64         `yaml:"base_station_x"`
	BaseStationY   float64         `yaml:"base_station_y"`
	CommRange      float64         `yaml:"comm_range"`
	SimulationTime SimTime         `yaml:"simulation_time"`
	PacketSize     float64         `yaml:"packet_size"`
	Seed           prng.RandomSeed `yaml:"seed"`
	Protocol       ProtocolType    `yaml:"protocol"`

	LeachP                  float64 `yaml:"leach_p"`
	LeachRoundTime          SimTime `yaml:"leach_round_time"`
	DdInterestInterval      SimTime `yaml:"dd_interest_interval"`
	DdReinforcementInterval SimTime `yaml:"dd_reinforcement_interval"`
	GearInterestInterval    SimTime `yaml:"gear_interest_interval"`
	PegasisChainInterval    SimTime `yaml:"pegasis_chain_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		NumNodes:       DefaultNumNodes,
		BaseStationX:   DefaultWidth / 2,
		BaseStationY:   DefaultHeight / 2,
		CommRange:      DefaultCommRange,
		SimulationTime: DefaultSimulationTime,
		PacketSize:     DefaultPacketSize,
		Seed:           DefaultSeed,
		Protocol:       ProtocolLeach,

		LeachP:                  0.05,
		LeachRoundTime:          100,
		DdInterestInterval:      200,
		DdReinforcementInterval: 50,
		GearInterestInterval:    200,
		PegasisChainInterval:    500,
	}
}

// PresetNames lists the built-in configuration presets.
var PresetNames = []string{"small", "medium", "large", "short", "long", "high_traffic", "low_traffic"}

// PresetConfig returns the default configuration adjusted by the named
// preset. An empty name returns the plain default.
func PresetConfig(name string) (*Config, error) {
	cfg := DefaultConfig()

	switch name {
	case "":
	case "small":
		cfg.NumNodes = 30
		cfg.Width = 50
		cfg.Height = 50
		cfg.CommRange = 20
	case "medium":
		// Same as default.
	case "large":
		cfg.NumNodes = 300
		cfg.Width = 200
		cfg.Height = 200
		cfg.CommRange = 40
	case "short":
		cfg.SimulationTime = 500
	case "long":
		cfg.SimulationTime = 2000
	case "high_traffic":
		cfg.PacketSize = 8000
	case "low_traffic":
		cfg.PacketSize = 2000
	default:
		return nil, errors.Errorf("unknown preset %q", name)
	}

	// Field-size presets keep the sink centered.
	cfg.BaseStationX = cfg.Width / 2
	cfg.BaseStationY = cfg.Height / 2
	return cfg, nil
}

// ReadConfigFile loads a YAML configuration file on top of the defaults, so
// a file only needs to name the fields it changes.
func ReadConfigFile(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot run
// with. It is called by New, so a failed validation aborts construction.
func (cfg *Config) Validate() error {
	if !cfg.Protocol.Valid() {
		return errors.Errorf("unknown protocol type %q", cfg.Protocol)
	}
	if cfg.NumNodes <= 0 {
		return errors.Errorf("num_nodes must be positive, got %d", cfg.NumNodes)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Errorf("field size must be positive, got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.CommRange <= 0 {
		return errors.Errorf("comm_range must be positive, got %g", cfg.CommRange)
	}
	if cfg.PacketSize <= 0 {
		return errors.Errorf("packet_size must be positive, got %g", cfg.PacketSize)
	}
	if cfg.LeachP <= 0 || cfg.LeachP >= 1 {
		return errors.Errorf("leach_p must be in (0, 1), got %g", cfg.LeachP)
	}
	// Zero intervals would divide by zero in the protocol cycle checks or
	// livelock the round loop, so they are rejected up front.
	if cfg.LeachRoundTime == 0 {
		return errors.Errorf("leach_round_time must be positive")
	}
	if cfg.DdInterestInterval == 0 {
		return errors.Errorf("dd_interest_interval must be positive")
	}
	if cfg.DdReinforcementInterval == 0 {
		return errors.Errorf("dd_reinforcement_interval must be positive")
	}
	if cfg.GearInterestInterval == 0 {
		return errors.Errorf("gear_interest_interval must be positive")
	}
	if cfg.PegasisChainInterval == 0 {
		return errors.Errorf("pegasis_chain_interval must be positive")
	}
	return nil
}
