package process

import (
	"errors"
	"fmt"
)

const (
	// NoPartition marks a process without assigned memory
	NoPartition = -1
	// NoCompletion marks a process without pending I/O
	NoCompletion = -1
)

// ErrInvalidTransition is returned when a state change is not allowed by the state machine.
var ErrInvalidTransition = errors.New("process: invalid transition")

// Process represents a process control block. Identity fields are set at load
// time; runtime fields are owned by the simulation engine.
type Process struct {
	PID        int `json:"pid" yaml:"pid"`
	Memory     int `json:"memory" yaml:"memory"`
	Arrival    int `json:"arrival" yaml:"arrival"`
	Service    int `json:"service" yaml:"service"`
	Priority   int `json:"priority" yaml:"priority"`
	IOInterval int `json:"ioInterval" yaml:"ioInterval"`
	IODuration int `json:"ioDuration" yaml:"ioDuration"`

	Remaining    int   `json:"remaining"`
	State        State `json:"state"`
	NextIO       int   `json:"nextIO"`
	IOCompletion int   `json:"ioCompletion"`
	Partition    int   `json:"partition"`
}

// New creates a process in NOT_ASSIGNED state
func New(pid, memory, arrival, service, priority, ioInterval, ioDuration int) *Process {
	ret := &Process{
		PID:        pid,
		Memory:     memory,
		Arrival:    arrival,
		Service:    service,
		Priority:   priority,
		IOInterval: ioInterval,
		IODuration: ioDuration,
	}
	ret.Reset()
	return ret
}

// Reset restores runtime fields to their load-time values
func (p *Process) Reset() {
	p.Remaining = p.Service
	p.State = StateNotAssigned
	p.NextIO = 0
	p.IOCompletion = NoCompletion
	p.Partition = NoPartition
}

// Clone returns a detached copy
func (p *Process) Clone() *Process {
	ret := *p
	return &ret
}

// Transition moves the process into the supplied state and returns the previous one
func (p *Process) Transition(to State) (State, error) {
	from := p.State
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: pid %d %s -> %s", ErrInvalidTransition, p.PID, from, to)
	}
	p.State = to
	return from, nil
}

// HasIO returns true when the process issues periodic I/O requests
func (p *Process) HasIO() bool {
	return p.IOInterval > 0
}

// ResetIO restarts the countdown to the next I/O request
func (p *Process) ResetIO() {
	if p.HasIO() {
		p.NextIO = p.IOInterval
	} else {
		p.NextIO = 0
	}
	p.IOCompletion = NoCompletion
}

// Execute accounts one tick of CPU time
func (p *Process) Execute() {
	if p.Remaining > 0 {
		p.Remaining--
	}
	if p.HasIO() && p.NextIO > 0 {
		p.NextIO--
	}
}

// IsDone returns true when no service time remains
func (p *Process) IsDone() bool {
	return p.Remaining == 0
}

// IORequested returns true when the I/O countdown expired
func (p *Process) IORequested() bool {
	return p.HasIO() && p.NextIO == 0
}
