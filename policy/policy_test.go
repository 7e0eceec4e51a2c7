package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/process"
)

func candidates(priorities ...int) []*process.Process {
	var ret []*process.Process
	for i, priority := range priorities {
		ret = append(ret, process.New(i+1, 1, 0, 1, priority, 0, 0))
	}
	return ret
}

func TestOrder_MostUrgentFirst(t *testing.T) {
	testCases := []struct {
		description string
		priorities  []int
		expect      int
	}{
		{description: "lowest value wins", priorities: []int{3, 1, 2}, expect: 2},
		{description: "ties keep queue order", priorities: []int{2, 1, 1}, expect: 2},
		{description: "all equal", priorities: []int{4, 4, 4}, expect: 1},
		{description: "single", priorities: []int{9}, expect: 1},
	}
	for _, policy := range []Policy{NewPriority(), NewRoundRobin(DefaultQuantum)} {
		for _, testCase := range testCases {
			ordered := policy.Order(candidates(testCase.priorities...))
			require.Len(t, ordered, len(testCase.priorities))
			assert.Equal(t, testCase.expect, ordered[0].PID, policy.Name()+": "+testCase.description)
		}
	}
	assert.Empty(t, NewPriority().Order(nil))
}

func TestOrder(t *testing.T) {
	input := candidates(2, 1, 2, 1)
	ordered := NewPriority().Order(input)
	var pids []int
	for _, p := range ordered {
		pids = append(pids, p.PID)
	}
	assert.Equal(t, []int{2, 4, 1, 3}, pids)
	assert.Equal(t, 1, input[0].PID, "input is not reordered")
}

func TestPreempts(t *testing.T) {
	urgent := process.New(1, 1, 0, 1, 1, 0, 0)
	relaxed := process.New(2, 1, 0, 1, 5, 0, 0)
	peer := process.New(3, 1, 0, 1, 5, 0, 0)

	assert.False(t, NewPriority().Preempts(urgent, relaxed))

	rr := NewRoundRobin(DefaultQuantum)
	assert.True(t, rr.Preempts(urgent, relaxed))
	assert.False(t, rr.Preempts(relaxed, urgent))
	assert.False(t, rr.Preempts(peer, relaxed), "equal priority never preempts")
	assert.False(t, rr.Preempts(nil, relaxed))
}

func TestFromConfig(t *testing.T) {
	p, err := FromConfig(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ModePriority, p.Name())
	assert.Equal(t, 0, p.Quantum())

	p, err = FromConfig(Config{Mode: "EP-RR"})
	require.NoError(t, err)
	assert.Equal(t, ModePriorityRoundRobin, p.Name())
	assert.Equal(t, DefaultQuantum, p.Quantum())

	p, err = FromConfig(Config{Mode: ModePriorityRoundRobin, Quantum: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantum())

	_, err = FromConfig(Config{Mode: "sjf"})
	assert.True(t, errors.Is(err, ErrUnknownMode))

	_, err = FromConfig(Config{Mode: ModePriorityRoundRobin, Quantum: -1})
	assert.Error(t, err)
}
