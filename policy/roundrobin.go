package policy

import "github.com/viant/schedsim/model/process"

// RoundRobin is external priority with time slicing and preemption
type RoundRobin struct {
	quantum int
}

// NewRoundRobin creates a round-robin policy with the supplied quantum
func NewRoundRobin(quantum int) *RoundRobin {
	return &RoundRobin{quantum: quantum}
}

func (r *RoundRobin) Name() string { return ModePriorityRoundRobin }

func (r *RoundRobin) Order(candidates []*process.Process) []*process.Process {
	return order(candidates)
}

// Preempts returns true only for a strictly more urgent candidate
func (r *RoundRobin) Preempts(candidate, running *process.Process) bool {
	if candidate == nil || running == nil {
		return false
	}
	return MoreUrgent(candidate, running)
}

func (r *RoundRobin) Quantum() int { return r.quantum }

var _ Policy = (*RoundRobin)(nil)
