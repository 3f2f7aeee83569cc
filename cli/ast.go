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
	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Energy   *EnergyCmd   `parser:"  @@"` //nolint
	Exit     *ExitCmd     `parser:"| @@"` //nolint
	Go       *GoCmd       `parser:"| @@"` //nolint
	Help     *HelpCmd     `parser:"| @@"` //nolint
	Metrics  *MetricsCmd  `parser:"| @@"` //nolint
	Node     *NodeCmd     `parser:"| @@"` //nolint
	Nodes    *NodesCmd    `parser:"| @@"` //nolint
	Protocol *ProtocolCmd `parser:"| @@"` //nolint
	Time     *TimeCmd     `parser:"| @@"` //nolint
}

// noinspection GoStructTag
type EnergyCmd struct {
	Cmd struct{} `parser:"\"energy\""` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `parser:"\"exit\""` //nolint
}

// noinspection GoStructTag
type GoCmd struct {
	Cmd      struct{} `parser:"\"go\""` //nolint
	Duration int      `parser:"@Int"` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `parser:"\"help\""`        //nolint
	HelpTopic string   `parser:"[ (@Ident) ]"` //nolint
}

// noinspection GoStructTag
type MetricsCmd struct {
	Cmd struct{} `parser:"\"metrics\""` //nolint
}

// noinspection GoStructTag
type NodeCmd struct {
	Cmd struct{} `parser:"\"node\""` //nolint
	Id  int      `parser:"@Int"`   //nolint
}

// noinspection GoStructTag
type NodesCmd struct {
	Cmd struct{} `parser:"\"nodes\""` //nolint
}

// noinspection GoStructTag
type ProtocolCmd struct {
	Cmd struct{} `parser:"\"protocol\""` //nolint
}

// noinspection GoStructTag
type TimeCmd struct {
	Cmd struct{} `parser:"\"time\""` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}
