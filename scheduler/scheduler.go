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

// Package scheduler implements the discrete-event core of the simulator: a
// monotonic simulated clock and any number of logical processes advancing it
// cooperatively. A process is ordinary Go code running in its own goroutine,
// but exactly one process executes at a time: control passes between the
// scheduler and a process only at explicit suspension points (Sleep, Join),
// so there is no true parallelism and no data races by construction.
//
// Pending wake-ups live in a priority queue ordered by (timestamp, schedule
// sequence number). Two processes due at the same instant resume in the order
// they were scheduled, which makes runs reproducible for a fixed random seed.
package scheduler

import (
	"container/heap"

	"github.com/pkg/errors"

	"github.com/wsnlab/wsnsim/logger"
	. "github.com/wsnlab/wsnsim/types"
)

// ProcessFunc is the body of a logical process. It runs to completion on the
// simulated time axis, suspending only via the passed Proc. A non-nil error
// aborts the whole simulation run.
type ProcessFunc func(p *Proc) error

// event is one pending wake-up of a process.
type event struct {
	timestamp SimTime
	seq       uint64 // schedule order, breaks timestamp ties
	proc      *Proc

	index int
}

type eventQueue []*event

func (eq eventQueue) Len() int {
	return len(eq)
}

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].timestamp != eq[j].timestamp {
		return eq[i].timestamp < eq[j].timestamp
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) {
	a, b := eq[i], eq[j]
	if a.index != i && b.index != j {
		logger.Panicf("wrong index")
	}

	eq[i], eq[j] = b, a             // swap the elements
	eq[i].index, eq[j].index = i, j // fix the indexes
}

func (eq *eventQueue) Push(x interface{}) {
	e := x.(*event)
	*eq = append(*eq, e)
	e.index = len(*eq) - 1
}

func (eq *eventQueue) Pop() (elem interface{}) {
	eqlen := len(*eq)
	elem = (*eq)[eqlen-1]
	*eq = (*eq)[:eqlen-1]
	return
}

// Simulator owns the simulated clock and the event queue.
type Simulator struct {
	now      SimTime
	seq      uint64
	queue    eventQueue
	parked   chan struct{}
	stopping bool
	stopped  bool
	err      error
}

func NewSimulator() *Simulator {
	s := &Simulator{
		parked: make(chan struct{}),
	}
	heap.Init(&s.queue)
	return s
}

// Now returns the current simulated time.
func (s *Simulator) Now() SimTime {
	return s.now
}

// PendingEvents returns the number of scheduled wake-ups.
func (s *Simulator) PendingEvents() int {
	return len(s.queue)
}

// Spawn registers fn as a new logical process, due to start at the current
// simulated time. Processes spawned at the same instant start in Spawn order.
func (s *Simulator) Spawn(name string, fn ProcessFunc) *Proc {
	logger.AssertFalse(s.stopped, "spawn on a stopped simulator")

	p := &Proc{
		sim:    s,
		name:   name,
		resume: make(chan struct{}),
	}
	s.schedule(p, s.now)

	go func() {
		<-p.resume
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("process %s panicked: %v", p.name, r)
			}
			p.finish(err)
		}()
		err = fn(p)
	}()

	return p
}

func (s *Simulator) schedule(p *Proc, timestamp SimTime) {
	heap.Push(&s.queue, &event{
		timestamp: timestamp,
		seq:       s.seq,
		proc:      p,
	})
	s.seq++
}

// resumeProc hands the baton to the process and blocks until it parks again,
// either at a suspension point or by finishing.
func (s *Simulator) resumeProc(p *Proc) {
	p.resume <- struct{}{}
	<-s.parked
}

// Run executes all events scheduled at or before until, in (timestamp, seq)
// order, then advances the clock to until and returns. It may be called
// repeatedly with increasing horizons. The first process error aborts the run
// and is returned.
func (s *Simulator) Run(until SimTime) error {
	logger.AssertFalse(s.stopped, "run on a stopped simulator")

	for len(s.queue) > 0 && s.queue[0].timestamp <= until {
		ev := heap.Pop(&s.queue).(*event)
		logger.AssertTrue(ev.timestamp >= s.now)
		s.now = ev.timestamp
		s.resumeProc(ev.proc)

		if s.err != nil {
			return s.err
		}
	}

	if s.now < until {
		s.now = until
	}
	return s.err
}

// Stop unwinds all remaining processes: every pending suspension resumes once
// more with a false/failed result so process loops can return. After Stop the
// simulator is finished and cannot run again.
func (s *Simulator) Stop() {
	if s.stopped {
		return
	}
	s.stopping = true
	for len(s.queue) > 0 {
		ev := heap.Pop(&s.queue).(*event)
		s.resumeProc(ev.proc)
	}
	s.stopped = true
}

// Proc is the suspension handle of one logical process.
type Proc struct {
	sim     *Simulator
	name    string
	resume  chan struct{}
	done    bool
	err     error
	waiters []*Proc
}

// Name returns the process name given at Spawn.
func (p *Proc) Name() string {
	return p.name
}

// Now returns the current simulated time.
func (p *Proc) Now() SimTime {
	return p.sim.now
}

// Done reports whether the process function has returned.
func (p *Proc) Done() bool {
	return p.done
}

// Spawn starts a child process at the current simulated time. The caller keeps
// running; use Join to await the child's completion.
func (p *Proc) Spawn(name string, fn ProcessFunc) *Proc {
	return p.sim.Spawn(name, fn)
}

// Sleep suspends the calling process for delta simulated time units. It
// returns false when the simulation is shutting down and the process must
// return. Other processes may run while this one is suspended: callers must
// re-check any shared state (node liveness, positions) after Sleep returns.
func (p *Proc) Sleep(delta SimTime) bool {
	s := p.sim
	if s.stopping {
		return false
	}

	s.schedule(p, s.now+delta)
	s.parked <- struct{}{}
	<-p.resume
	return !s.stopping
}

// Join suspends the calling process until the child process has finished,
// resuming at the simulated instant of the child's completion. It returns
// false when the simulation is shutting down.
func (p *Proc) Join(child *Proc) bool {
	s := p.sim
	if s.stopping {
		return false
	}
	if child.done {
		return true
	}

	child.waiters = append(child.waiters, p)
	s.parked <- struct{}{}
	<-p.resume
	return !s.stopping
}

// finish marks the process done, wakes its waiters at the current instant and
// returns the baton to the scheduler.
func (p *Proc) finish(err error) {
	s := p.sim
	p.done = true
	p.err = err
	if err != nil && s.err == nil {
		s.err = errors.Wrapf(err, "process %s", p.name)
	}

	for _, w := range p.waiters {
		s.schedule(w, s.now)
	}
	p.waiters = nil

	s.parked <- struct{}{}
}
