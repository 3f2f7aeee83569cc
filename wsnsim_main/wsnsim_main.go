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

// Package wsnsim_main is the simulator entrypoint shared by the wsnsim binary.
package wsnsim_main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wsnlab/wsnsim/cli"
	"github.com/wsnlab/wsnsim/cli/runcli"
	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/prng"
	"github.com/wsnlab/wsnsim/progctx"
	"github.com/wsnlab/wsnsim/simulation"
	"github.com/wsnlab/wsnsim/types"
)

type MainArgs struct {
	ConfigFile  string
	Preset      string
	Protocol    string
	NumNodes    int
	SimTime     uint64
	Seed        int64
	PacketSize  float64
	LogLevel    string
	Interactive bool
	Compare     bool
	OutputFile  string
}

var (
	args MainArgs
)

func parseArgs() {
	flag.StringVar(&args.ConfigFile, "config", "", "read simulation configuration from YAML file")
	flag.StringVar(&args.Preset, "preset", "", fmt.Sprintf("use a configuration preset: %v", simulation.PresetNames))
	flag.StringVar(&args.Protocol, "protocol", "", fmt.Sprintf("routing protocol: %v", types.ProtocolTypes))
	flag.IntVar(&args.NumNodes, "nodes", 0, "number of sensor nodes")
	flag.Uint64Var(&args.SimTime, "time", 0, "simulation duration, in time units")
	flag.Int64Var(&args.Seed, "seed", -1, "random seed (non-negative)")
	flag.Float64Var(&args.PacketSize, "packet-size", 0, "data packet size, in bits")
	flag.StringVar(&args.LogLevel, "log", "warn", "set logging level: trace, debug, info, warn, error.")
	flag.BoolVar(&args.Interactive, "i", false, "run the interactive console instead of a batch run")
	flag.BoolVar(&args.Compare, "compare", false, "run all routing protocols on the same topology and compare")
	flag.StringVar(&args.OutputFile, "output", "", "write collected metrics to YAML file")
	flag.Parse()
}

func buildConfig() (*simulation.Config, error) {
	var cfg *simulation.Config
	var err error

	switch {
	case args.ConfigFile != "":
		cfg, err = simulation.ReadConfigFile(args.ConfigFile)
	case args.Preset != "":
		cfg, err = simulation.PresetConfig(args.Preset)
	default:
		cfg = simulation.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	// command line flags override the file or preset values.
	if args.Protocol != "" {
		cfg.Protocol = types.ProtocolType(args.Protocol)
	}
	if args.NumNodes > 0 {
		cfg.NumNodes = args.NumNodes
	}
	if args.SimTime > 0 {
		cfg.SimulationTime = types.SimTime(args.SimTime)
	}
	if args.Seed >= 0 {
		cfg.Seed = prng.RandomSeed(args.Seed)
	}
	if args.PacketSize > 0 {
		cfg.PacketSize = args.PacketSize
	}

	return cfg, cfg.Validate()
}

func Main(ctx *progctx.ProgCtx, cliOptions *runcli.CliOptions) {
	parseArgs()

	lv, err := logger.ParseLevelString(args.LogLevel)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	logger.SetLevel(lv)

	cfg, err := buildConfig()
	if err != nil {
		logger.Fatalf("%v", err)
	}

	if args.Compare {
		runComparison(cfg)
		return
	}

	if args.Interactive {
		runConsole(ctx, cfg, cliOptions)
		return
	}

	runBatch(cfg)
}

func runBatch(cfg *simulation.Config) {
	sim, err := simulation.New(cfg)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	metrics, err := sim.Run()
	if err != nil {
		logger.Fatalf("simulation failed: %v", err)
	}

	printSummary(cfg.Protocol, sim, metrics)
	writeMetrics(metrics)
}

// runComparison runs every protocol on an identically seeded topology and
// prints the delivery and lifetime results side by side.
func runComparison(cfg *simulation.Config) {
	fmt.Printf("%-18s %10s %10s %12s %10s\n",
		"protocol", "delivered", "lifetime", "consumed", "alive")

	for _, pt := range types.ProtocolTypes {
		runCfg := *cfg
		runCfg.Protocol = pt

		sim, err := simulation.New(&runCfg)
		if err != nil {
			logger.Fatalf("%v", err)
		}

		metrics, err := sim.Run()
		if err != nil {
			logger.Fatalf("simulation failed: %v", err)
		}

		fmt.Printf("%-18s %10d %10d %12.6f %10d\n",
			pt, metrics.PacketsDelivered, metrics.NetworkLifetime,
			metrics.TotalEnergyConsumed, sim.Network().AliveCount())
	}
}

func runConsole(ctx *progctx.ProgCtx, cfg *simulation.Config, cliOptions *runcli.CliOptions) {
	sim, err := simulation.New(cfg)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	ctx.Defer(func() {
		_ = os.Stdin.Close()
	})
	handleSignals(ctx)

	rt := cli.NewCmdRunner(ctx, sim)

	// Redraw the prompt after asynchronous log output.
	logger.SetStdoutCallback(rt)
	defer logger.SetStdoutCallback(nil)

	err = runcli.RunCli(rt, cliOptions)
	if err != nil && ctx.Err() == nil {
		ctx.Cancel(errors.Wrapf(err, "console exit"))
	} else {
		ctx.Cancel(nil)
	}

	printSummary(cfg.Protocol, sim, sim.Metrics())
	writeMetrics(sim.Metrics())

	ctx.Wait()
}

func printSummary(pt types.ProtocolType, sim *simulation.Simulation, metrics *simulation.Metrics) {
	fmt.Printf("protocol: %s\n", pt)
	fmt.Printf("time: %d\n", sim.Time())
	fmt.Printf("packets delivered: %d\n", metrics.PacketsDelivered)
	fmt.Printf("network lifetime: %d\n", metrics.NetworkLifetime)
	fmt.Printf("energy consumed: %f J\n", metrics.TotalEnergyConsumed)
	fmt.Printf("alive nodes: %d/%d\n", sim.Network().AliveCount(), sim.Network().NodeCount())
}

func writeMetrics(metrics *simulation.Metrics) {
	if args.OutputFile == "" {
		return
	}

	data, err := yaml.Marshal(metrics)
	if err != nil {
		logger.Errorf("marshal metrics: %v", err)
		return
	}
	if err := ioutil.WriteFile(args.OutputFile, data, 0644); err != nil {
		logger.Errorf("write metrics file: %v", err)
		return
	}
	logger.Infof("metrics written to %s", args.OutputFile)
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	signal.Ignore(syscall.SIGALRM)

	ctx.WaitAdd("handleSignals", 1)
	go func() {
		defer logger.Debugf("handleSignals exit.")
		defer ctx.WaitDone("handleSignals")

		for {
			select {
			case sig := <-c:
				logger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
			case <-ctx.Done():
				return
			}
		}
	}()
}
