package meta

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name       string `yaml:"name"`
	Partitions []int  `yaml:"partitions"`
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("name: ${env.SCHEDSIM_TEST_NAME:-demo}\npartitions: [10, 5]\n"), 0o644))

	srv := New(nil, dir)
	var target sample
	require.NoError(t, srv.Load(context.Background(), "config.yaml", &target))
	assert.Equal(t, "demo", target.Name)
	assert.Equal(t, []int{10, 5}, target.Partitions)

	var absolute sample
	require.NoError(t, New(nil, "").Load(context.Background(), filepath.Join(dir, "config.yaml"), &absolute))
	assert.Equal(t, "demo", absolute.Name)
}

func TestService_Download_NotFound(t *testing.T) {
	srv := New(nil, "")
	_, err := srv.Download(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
