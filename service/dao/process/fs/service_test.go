package fs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv, err := New(ctx, filepath.Join(t.TempDir(), "run"), nil)
	require.NoError(t, err)

	p1 := process.New(10, 10, 0, 5, 1, 3, 2)
	p2 := process.New(2, 15, 1, 4, 2, 0, 0)
	require.NoError(t, srv.Save(ctx, p1))
	require.NoError(t, srv.Save(ctx, p2))

	_, err = p1.Transition(process.StateNew)
	require.NoError(t, err)
	p1.Partition = 1
	require.NoError(t, srv.Save(ctx, p1))

	loaded, err := srv.Load(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, p1, loaded)

	all, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].PID)
	assert.Equal(t, 10, all[1].PID)

	admitted, err := srv.List(ctx, &dao.Parameter{Name: criteria.StateParameter, Value: string(process.StateNew)})
	require.NoError(t, err)
	require.Len(t, admitted, 1)
	assert.Equal(t, 10, admitted[0].PID)

	require.NoError(t, srv.Delete(ctx, 2))
	_, err = srv.Load(ctx, 2)
	assert.True(t, errors.Is(err, dao.ErrNotFound))
	assert.True(t, errors.Is(srv.Delete(ctx, 2), dao.ErrNotFound))
	assert.True(t, errors.Is(srv.Save(ctx, nil), dao.ErrNilEntity))
}
