package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/dao"
)

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	srv := New(nil)
	source := process.New(1, 10, 0, 5, 1, 0, 0)
	source.Remaining = 0
	require.NoError(t, srv.Register(ctx, []*process.Process{source}))

	p, err := srv.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Remaining)
	assert.NotSame(t, source, p)

	err = srv.Register(ctx, []*process.Process{process.New(1, 10, 0, 5, 1, 0, 0)})
	assert.True(t, errors.Is(err, dao.ErrDuplicate))

	_, err = srv.Lookup(ctx, 9)
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}

func TestService_Apply(t *testing.T) {
	ctx := context.Background()
	srv := New(nil)
	require.NoError(t, srv.Register(ctx, []*process.Process{process.New(1, 10, 0, 5, 1, 0, 0)}))

	p, err := srv.Lookup(ctx, 1)
	require.NoError(t, err)
	from, err := srv.Apply(ctx, p, process.StateNew)
	require.NoError(t, err)
	assert.Equal(t, process.StateNotAssigned, from)
	stored, err := srv.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, process.StateNew, stored.State)

	_, err = srv.Apply(ctx, p, process.StateTerminated)
	assert.True(t, errors.Is(err, process.ErrInvalidTransition))
}

func advance(t *testing.T, srv *Service, pid int, states ...process.State) {
	ctx := context.Background()
	p, err := srv.Lookup(ctx, pid)
	require.NoError(t, err)
	for _, state := range states {
		_, err = srv.Apply(ctx, p, state)
		require.NoError(t, err)
	}
}

func TestService_Completed(t *testing.T) {
	ctx := context.Background()
	srv := New(nil)
	done, err := srv.Completed(ctx)
	require.NoError(t, err)
	assert.False(t, done, "empty registry never completes")

	require.NoError(t, srv.Register(ctx, []*process.Process{
		process.New(1, 10, 0, 1, 1, 0, 0),
		process.New(2, 10, 9, 1, 1, 0, 0),
	}))
	lifecycle := []process.State{process.StateNew, process.StateReady, process.StateRunning, process.StateTerminated}
	advance(t, srv, 1, lifecycle...)
	done, err = srv.Completed(ctx)
	require.NoError(t, err)
	assert.False(t, done, "pid 2 still waits for admission")

	advance(t, srv, 2, process.StateNew, process.StateReady, process.StateRunning, process.StateWaiting)
	done, err = srv.Completed(ctx)
	require.NoError(t, err)
	assert.False(t, done, "pid 2 still waits for io")

	advance(t, srv, 2, process.StateReady, process.StateRunning, process.StateTerminated)
	done, err = srv.Completed(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	srv := New(nil)
	require.NoError(t, srv.Register(ctx, []*process.Process{
		process.New(1, 10, 0, 1, 1, 0, 0),
		process.New(2, 10, 0, 1, 1, 0, 0),
		process.New(3, 10, 0, 1, 1, 0, 0),
	}))
	advance(t, srv, 2, process.StateNew, process.StateReady)
	advance(t, srv, 3, process.StateNew)

	testCases := []struct {
		description string
		states      []process.State
		expect      []int
	}{
		{description: "all", expect: []int{1, 2, 3}},
		{description: "single state", states: []process.State{process.StateReady}, expect: []int{2}},
		{description: "any of states", states: []process.State{process.StateNotAssigned, process.StateNew}, expect: []int{1, 3}},
		{description: "no match", states: []process.State{process.StateTerminated}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			list, err := srv.List(ctx, testCase.states...)
			require.NoError(t, err)
			var pids []int
			for _, p := range list {
				pids = append(pids, p.PID)
			}
			assert.Equal(t, testCase.expect, pids)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	srv := New(nil)
	require.NoError(t, srv.Register(ctx, []*process.Process{process.New(1, 10, 0, 5, 1, 3, 1)}))

	p, err := srv.Lookup(ctx, 1)
	require.NoError(t, err)
	p.Execute()
	require.NoError(t, srv.Update(ctx, p))
	updated, err := srv.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Remaining)

	err = srv.Update(ctx, process.New(2, 10, 0, 5, 1, 0, 0))
	assert.True(t, errors.Is(err, dao.ErrNotFound))
	assert.True(t, errors.Is(srv.Update(ctx, nil), dao.ErrNilEntity))
}

func TestService_Snapshot(t *testing.T) {
	ctx := context.Background()
	srv := New(nil)
	require.NoError(t, srv.Register(ctx, []*process.Process{
		process.New(3, 10, 0, 5, 1, 0, 0),
		process.New(1, 10, 0, 5, 1, 0, 0),
	}))

	ordered, err := srv.Snapshot(ctx, 3, 1)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, 3, ordered[0].PID)
	assert.Equal(t, 1, ordered[1].PID)

	ordered[0].Remaining = 0
	p, err := srv.Lookup(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Remaining)

	all, err := srv.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = srv.Snapshot(ctx, 7)
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}
