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

// Package cli implements the WSNSIM console. It parses and executes
// interactive simulation commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wsnlab/wsnsim/cli/runcli"
	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/progctx"
	"github.com/wsnlab/wsnsim/routing"
	"github.com/wsnlab/wsnsim/simulation"
	. "github.com/wsnlab/wsnsim/types"
)

const (
	Prompt = "> "
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

type CmdRunner struct {
	sim  *simulation.Simulation
	ctx  *progctx.ProgCtx
	help Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, sim *simulation.Simulation) *CmdRunner {
	cr := &CmdRunner{
		ctx:  ctx,
		sim:  sim,
		help: newHelp(),
	}
	return cr
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

// OnStdout is the handler called when new Stdout/Stderr output occurred.
func (rt *CmdRunner) OnStdout() {
	runcli.RestorePrompt()
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Go != nil {
		rt.executeGo(cc, cmd.Go)
	} else if cmd.Time != nil {
		rt.executeTime(cc, cmd.Time)
	} else if cmd.Nodes != nil {
		rt.executeLsNodes(cc, cmd.Nodes)
	} else if cmd.Node != nil {
		rt.executeNode(cc, cmd.Node)
	} else if cmd.Energy != nil {
		rt.executeEnergy(cc, cmd.Energy)
	} else if cmd.Metrics != nil {
		rt.executeMetrics(cc, cmd.Metrics)
	} else if cmd.Protocol != nil {
		rt.executeProtocol(cc, cmd.Protocol)
	} else if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executeGo(cc *CommandContext, cmd *GoCmd) {
	if cmd.Duration <= 0 {
		cc.errorf("go duration must be positive: %d", cmd.Duration)
		return
	}
	cc.error(rt.sim.AdvanceBy(SimTime(cmd.Duration)))
}

func (rt *CmdRunner) executeTime(cc *CommandContext, cmd *TimeCmd) {
	cc.outputf("%d\n", rt.sim.Time())
}

type nodeListItem struct {
	Id     NodeId  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Energy float64 `yaml:"energy"`
	Alive  bool    `yaml:"alive"`
}

func (rt *CmdRunner) executeLsNodes(cc *CommandContext, cmd *NodesCmd) {
	nodes := rt.sim.Nodes()
	items := make([]nodeListItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, nodeListItem{
			Id:     n.Id,
			X:      n.X,
			Y:      n.Y,
			Energy: n.Energy,
			Alive:  n.Alive,
		})
	}
	cc.outputItemsAsYaml(items)
}

type nodeDetail struct {
	Id            NodeId   `yaml:"id"`
	X             float64  `yaml:"x"`
	Y             float64  `yaml:"y"`
	Energy        float64  `yaml:"energy"`
	Alive         bool     `yaml:"alive"`
	Neighbors     []NodeId `yaml:"neighbors"`
	IsClusterHead bool     `yaml:"is_cluster_head"`
	ClusterHead   NodeId   `yaml:"cluster_head"`
}

func (rt *CmdRunner) executeNode(cc *CommandContext, cmd *NodeCmd) {
	n := rt.sim.Node(cmd.Id)
	if n == nil {
		cc.errorf("node %d not found", cmd.Id)
		return
	}
	cc.outputItemsAsYaml([]nodeDetail{{
		Id:            n.Id,
		X:             n.X,
		Y:             n.Y,
		Energy:        n.Energy,
		Alive:         n.Alive,
		Neighbors:     n.Neighbors,
		IsClusterHead: n.IsClusterHead,
		ClusterHead:   n.ClusterHead,
	}})
}

func (rt *CmdRunner) executeEnergy(cc *CommandContext, cmd *EnergyCmd) {
	m := rt.sim.Metrics()
	cc.outputf("remaining: %f\n", rt.sim.Network().TotalEnergy())
	cc.outputf("consumed: %f\n", m.TotalEnergyConsumed)
}

func (rt *CmdRunner) executeMetrics(cc *CommandContext, cmd *MetricsCmd) {
	cc.outputItemsAsYaml(rt.sim.Metrics())
}

type clusterItem struct {
	Head    NodeId   `yaml:"head"`
	Members []NodeId `yaml:"members"`
}

type routeItem struct {
	Node NodeId `yaml:"node"`
	Next NodeId `yaml:"next"`
}

type regionItem struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type gradientItem struct {
	Node     NodeId  `yaml:"node"`
	Upstream NodeId  `yaml:"upstream"`
	Weight   float64 `yaml:"weight"`
}

type chainItem struct {
	Chain  []NodeId `yaml:"chain"`
	Leader NodeId   `yaml:"leader"`
}

// executeProtocol prints the active protocol's name and its current routing
// structure: clusters, gradients, cached routes, or the chain.
func (rt *CmdRunner) executeProtocol(cc *CommandContext, cmd *ProtocolCmd) {
	prot := rt.sim.Protocol()
	cc.outputf("%s\n", prot.Name())

	switch p := prot.(type) {
	case *routing.Leach:
		heads := p.ClusterHeads()
		clusters := p.Clusters()
		items := make([]clusterItem, 0, len(heads))
		for _, head := range heads {
			items = append(items, clusterItem{Head: head, Members: clusters[head]})
		}
		cc.outputItemsAsYaml(items)
	case *routing.DirectedDiffusion:
		gradients := p.Gradients()
		items := make([]gradientItem, 0, len(gradients))
		for _, n := range rt.sim.Nodes() {
			for upstream, weight := range gradients[n.Id] {
				items = append(items, gradientItem{Node: n.Id, Upstream: upstream, Weight: weight})
			}
		}
		cc.outputItemsAsYaml(items)
	case *routing.Gear:
		regions := make([]regionItem, 0)
		for _, r := range p.TargetRegions() {
			regions = append(regions, regionItem{X: r.X, Y: r.Y, Radius: r.Radius})
		}
		cc.outputItemsAsYaml(regions)

		routes := p.Routes()
		items := make([]routeItem, 0, len(routes))
		for _, n := range rt.sim.Nodes() {
			if next, ok := routes[n.Id]; ok {
				items = append(items, routeItem{Node: n.Id, Next: next})
			}
		}
		cc.outputItemsAsYaml(items)
	case *routing.Pegasis:
		cc.outputItemsAsYaml([]chainItem{{Chain: p.Chain(), Leader: p.Leader()}})
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	rt.sim.Stop()
	rt.ctx.Cancel(nil)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}
