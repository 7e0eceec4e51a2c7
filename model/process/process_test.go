package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		description string
		from        State
		to          State
		expect      bool
	}{
		{description: "admission", from: StateNotAssigned, to: StateNew, expect: true},
		{description: "new to ready", from: StateNew, to: StateReady, expect: true},
		{description: "dispatch", from: StateReady, to: StateRunning, expect: true},
		{description: "terminate", from: StateRunning, to: StateTerminated, expect: true},
		{description: "block", from: StateRunning, to: StateWaiting, expect: true},
		{description: "demote", from: StateRunning, to: StateReady, expect: true},
		{description: "io done", from: StateWaiting, to: StateReady, expect: true},
		{description: "skip new", from: StateNotAssigned, to: StateReady, expect: false},
		{description: "waiting cannot run", from: StateWaiting, to: StateRunning, expect: false},
		{description: "terminated is final", from: StateTerminated, to: StateReady, expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, CanTransition(testCase.from, testCase.to), testCase.description)
	}
}

func TestProcess_Transition(t *testing.T) {
	p := New(1, 10, 0, 5, 1, 0, 0)
	assert.Equal(t, StateNotAssigned, p.State)
	assert.Equal(t, NoPartition, p.Partition)
	assert.Equal(t, NoCompletion, p.IOCompletion)

	from, err := p.Transition(StateNew)
	require.NoError(t, err)
	assert.Equal(t, StateNotAssigned, from)

	_, err = p.Transition(StateRunning)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StateNew, p.State)
}

func TestProcess_Execute(t *testing.T) {
	p := New(1, 10, 0, 2, 1, 3, 2)
	p.ResetIO()
	assert.Equal(t, 3, p.NextIO)

	p.Execute()
	assert.Equal(t, 1, p.Remaining)
	assert.Equal(t, 2, p.NextIO)
	p.Execute()
	p.Execute()
	assert.Equal(t, 0, p.Remaining)
	assert.Equal(t, 0, p.NextIO)
	assert.True(t, p.IsDone())
	assert.True(t, p.IORequested())

	noIO := New(2, 10, 0, 1, 1, 0, 0)
	noIO.ResetIO()
	noIO.Execute()
	assert.False(t, noIO.IORequested())
}

func TestProcess_Clone(t *testing.T) {
	p := New(7, 10, 0, 2, 1, 0, 0)
	clone := p.Clone()
	clone.Remaining = 0
	assert.Equal(t, 2, p.Remaining)
}
