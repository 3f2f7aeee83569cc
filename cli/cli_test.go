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

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wsnlab/wsnsim/logger"
	"github.com/wsnlab/wsnsim/progctx"
	"github.com/wsnlab/wsnsim/simulation"
	. "github.com/wsnlab/wsnsim/types"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	err := parseBytes([]byte("wrongcmd"), &cmd)
	assert.NotNil(t, err)

	assert.Nil(t, parseBytes([]byte("go 100"), &cmd))
	assert.True(t, cmd.Go != nil && cmd.Go.Duration == 100)
	assert.NotNil(t, parseBytes([]byte("go"), &cmd))

	assert.True(t, parseBytes([]byte("time"), &cmd) == nil && cmd.Time != nil)

	assert.True(t, parseBytes([]byte("nodes"), &cmd) == nil && cmd.Nodes != nil)

	assert.Nil(t, parseBytes([]byte("node 3"), &cmd))
	assert.True(t, cmd.Node != nil && cmd.Node.Id == 3)
	assert.NotNil(t, parseBytes([]byte("node"), &cmd))

	assert.True(t, parseBytes([]byte("energy"), &cmd) == nil && cmd.Energy != nil)

	assert.True(t, parseBytes([]byte("metrics"), &cmd) == nil && cmd.Metrics != nil)

	assert.True(t, parseBytes([]byte("protocol"), &cmd) == nil && cmd.Protocol != nil)

	assert.Nil(t, parseBytes([]byte("help"), &cmd))
	assert.True(t, cmd.Help != nil && cmd.Help.HelpTopic == "")
	assert.Nil(t, parseBytes([]byte("help go"), &cmd))
	assert.True(t, cmd.Help != nil && cmd.Help.HelpTopic == "go")

	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)
}

func newTestRunner(t *testing.T, protocol ProtocolType) (*CmdRunner, *progctx.ProgCtx) {
	cfg := simulation.DefaultConfig()
	cfg.NumNodes = 10
	cfg.CommRange = 150
	cfg.SimulationTime = 200
	cfg.Protocol = protocol

	sim, err := simulation.New(cfg)
	assert.Nil(t, err)

	ctx := progctx.New(context.Background())
	return NewCmdRunner(ctx, sim), ctx
}

func runCommand(t *testing.T, cr *CmdRunner, cmdline string) string {
	var buf bytes.Buffer
	err := cr.HandleCommand(cmdline, &buf)
	assert.Nil(t, err)
	return buf.String()
}

func TestCommandTime(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "time")
	assert.True(t, strings.HasPrefix(out, "0\n"))
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestCommandGo(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "go 50")
	assert.True(t, strings.HasSuffix(out, "Done\n"))

	out = runCommand(t, cr, "time")
	assert.True(t, strings.HasPrefix(out, "50\n"))

	out = runCommand(t, cr, "go 0")
	assert.Contains(t, out, "Error:")
}

func TestCommandNodes(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "nodes")
	assert.Contains(t, out, "id: 0")
	assert.Contains(t, out, "id: 9")
	assert.Contains(t, out, "alive: true")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestCommandNode(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "node 3")
	assert.Contains(t, out, "id: 3")
	assert.Contains(t, out, "neighbors:")
	assert.True(t, strings.HasSuffix(out, "Done\n"))

	out = runCommand(t, cr, "node 99")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "not found")
}

func TestCommandEnergy(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "energy")
	assert.Contains(t, out, "remaining:")
	assert.Contains(t, out, "consumed:")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestCommandMetrics(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolPegasis)

	runCommand(t, cr, "go 100")
	out := runCommand(t, cr, "metrics")
	assert.Contains(t, out, "time_points:")
	assert.Contains(t, out, "alive_nodes:")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestCommandProtocol(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolGear)

	out := runCommand(t, cr, "protocol")
	assert.Contains(t, out, "GEAR")
	assert.Contains(t, out, "radius")
}

func TestCommandHelp(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "help")
	assert.Contains(t, out, "go")
	assert.Contains(t, out, "nodes")
	assert.Contains(t, out, "help <command>")

	out = runCommand(t, cr, "help go")
	assert.Contains(t, out, "Advance the simulation")
}

func TestCommandExit(t *testing.T) {
	cr, ctx := newTestRunner(t, ProtocolLeach)

	var buf bytes.Buffer
	err := cr.HandleCommand("exit", &buf)
	assert.NotNil(t, err) // exit cancels the program context
	assert.NotNil(t, ctx.Err())

	// further commands are ignored once the context is cancelled
	buf.Reset()
	_ = cr.HandleCommand("time", &buf)
	assert.Equal(t, "", buf.String())
}

func TestRunnerRedrawsPromptOnLogOutput(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	assert.Implements(t, (*logger.StdoutCallback)(nil), cr)

	// With no console running the redraw is a no-op.
	cr.OnStdout()
}

func TestCommandParseError(t *testing.T) {
	cr, _ := newTestRunner(t, ProtocolLeach)

	out := runCommand(t, cr, "frobnicate")
	assert.Contains(t, out, "Error:")
}
