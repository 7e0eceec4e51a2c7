package policy

import "github.com/viant/schedsim/model/process"

// Priority is the non-preemptive external priority policy
type Priority struct{}

// NewPriority creates an external priority policy
func NewPriority() *Priority {
	return &Priority{}
}

func (p *Priority) Name() string { return ModePriority }

func (p *Priority) Order(candidates []*process.Process) []*process.Process {
	return order(candidates)
}

// Preempts always returns false: a dispatched process keeps the CPU until it blocks or terminates.
func (p *Priority) Preempts(_, _ *process.Process) bool {
	return false
}

func (p *Priority) Quantum() int { return 0 }

var _ Policy = (*Priority)(nil)
