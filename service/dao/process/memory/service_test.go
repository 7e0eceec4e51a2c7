package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

func TestService_List(t *testing.T) {
	ctx := context.Background()
	srv := New()
	require.NoError(t, srv.Save(ctx, process.New(1, 10, 0, 5, 1, 0, 0)))
	require.NoError(t, srv.Save(ctx, process.New(2, 10, 0, 5, 1, 0, 0)))
	require.NoError(t, srv.Save(ctx, process.New(3, 10, 0, 5, 1, 0, 0)))

	p, err := srv.Load(ctx, 2)
	require.NoError(t, err)
	_, err = p.Transition(process.StateNew)
	require.NoError(t, err)

	notAssigned, err := srv.List(ctx, dao.NewParameter(criteria.StateParameter, string(process.StateNotAssigned)))
	require.NoError(t, err)
	require.Len(t, notAssigned, 2)
	assert.Equal(t, 1, notAssigned[0].PID)
	assert.Equal(t, 3, notAssigned[1].PID)

	all, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
