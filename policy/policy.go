package policy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/schedsim/model/process"
)

// Scheduling modes recognised by the engine.
const (
	ModePriority           = "ep"    // external priority, run to block or completion
	ModePriorityRoundRobin = "ep-rr" // external priority with quantum and preemption

	// DefaultQuantum is the round-robin time slice in ticks
	DefaultQuantum = 100
)

// ErrUnknownMode is returned for unsupported scheduling modes
var ErrUnknownMode = errors.New("policy: unknown mode")

// Policy decides which ready process runs next.
//
// Urgency is the same everywhere: a numerically lower priority value is more
// urgent, and among equal priorities the earlier ready-queue position wins.
type Policy interface {
	// Name returns the policy mode
	Name() string

	// Order returns candidates sorted most urgent first; the sort is stable
	Order(candidates []*process.Process) []*process.Process

	// Preempts reports whether candidate displaces running
	Preempts(candidate, running *process.Process) bool

	// Quantum returns time slice length in ticks, 0 means unlimited
	Quantum() int
}

// Config represents the declarative policy settings
type Config struct {
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Quantum int    `json:"quantum,omitempty" yaml:"quantum,omitempty"`
}

// DefaultConfig returns the default policy settings
func DefaultConfig() Config {
	return Config{Mode: ModePriority, Quantum: DefaultQuantum}
}

// FromConfig builds a Policy from its configuration
func FromConfig(c Config) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case ModePriority, "":
		return NewPriority(), nil
	case ModePriorityRoundRobin, "rr":
		quantum := c.Quantum
		if quantum == 0 {
			quantum = DefaultQuantum
		}
		if quantum < 0 {
			return nil, fmt.Errorf("policy: invalid quantum %d", quantum)
		}
		return NewRoundRobin(quantum), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
}

// MoreUrgent reports whether a should run before b
func MoreUrgent(a, b *process.Process) bool {
	return a.Priority < b.Priority
}

// order sorts a copy of candidates by urgency, preserving queue order on ties
func order(candidates []*process.Process) []*process.Process {
	ret := make([]*process.Process, len(candidates))
	copy(ret, candidates)
	sort.SliceStable(ret, func(i, j int) bool {
		return MoreUrgent(ret[i], ret[j])
	})
	return ret
}
