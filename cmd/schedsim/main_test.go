package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/service/workload"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout := bytes.Buffer{}
	cmd := newRootCommand(&stdout)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input_data.txt")
	require.NoError(t, os.WriteFile(input, []byte("1, 10, 0, 5, 0, 0, 1\n2, 10, 0, 3, 0, 0, 1\n"), 0o644))
	output := filepath.Join(dir, "execution.txt")

	testCases := []struct {
		description string
		args        []string
		expectErr   error
		expectCode  int
		expectOut   []string
	}{
		{description: "no arguments", expectErr: errArgumentCount, expectCode: exitUsage},
		{description: "too many arguments", args: []string{input, input}, expectErr: errArgumentCount, expectCode: exitUsage},
		{description: "unreadable", args: []string{filepath.Join(dir, "missing.txt")}, expectErr: workload.ErrUnreadable, expectCode: exitUnreadable},
		{
			description: "default policy",
			args:        []string{"--output", output, input},
			expectOut:   []string{"ep: 2 processes finished in 8 ticks"},
		},
		{
			description: "round robin with statistics",
			args:        []string{"--policy", "ep-rr", "--quantum", "3", "--stats", "--output", output, input},
			expectOut:   []string{"ep-rr: 2 processes finished in 8 ticks", "TURNAROUND", "EXPIRIES"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			out, err := execute(t, testCase.args...)
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), "unexpected error: %v", err)
				assert.Equal(t, testCase.expectCode, exitCode(err))
				return
			}
			require.NoError(t, err)
			for _, expect := range testCase.expectOut {
				assert.Contains(t, out, expect)
			}
			data, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.Contains(t, string(data), "Time of Transition")
		})
	}
}

func TestRootCommand_Compare(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input_data.txt")
	require.NoError(t, os.WriteFile(input, []byte("1, 10, 0, 5, 0, 0, 1\n2, 10, 0, 3, 0, 0, 1\n"), 0o644))
	output := filepath.Join(dir, "execution.txt")

	out, err := execute(t, "--compare", "--quantum", "3", "--gantt", "--output", output, input)
	require.NoError(t, err)
	assert.Contains(t, out, "ep: 2 processes finished in 8 ticks")
	assert.Contains(t, out, "ep-rr: 2 processes finished in 8 ticks")
	assert.Contains(t, out, "AVG TURNAROUND")
	assert.Contains(t, out, "START")
	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err), "compare writes no trace")
}
