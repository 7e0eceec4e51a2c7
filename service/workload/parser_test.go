package workload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/process"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      []*process.Process
		expectErr   error
	}{
		{
			description: "reference layout",
			input:       "1, 10, 0, 5, 0, 0, 1\n2, 25, 3, 8, 3, 2, 4\n",
			expect: []*process.Process{
				process.New(1, 10, 0, 5, 1, 0, 0),
				process.New(2, 25, 3, 8, 4, 3, 2),
			},
		},
		{
			description: "comments and blank lines",
			input:       "# pid, mem, arrival, service, ioInterval, ioDuration, priority\n\n  7,1,2,3,0,0,9   # trailing\n",
			expect: []*process.Process{
				process.New(7, 1, 2, 3, 9, 0, 0),
			},
		},
		{
			description: "windows line endings",
			input:       "1, 10, 0, 5, 0, 0, 1\r\n",
			expect:      []*process.Process{process.New(1, 10, 0, 5, 1, 0, 0)},
		},
		{description: "too few fields", input: "1, 10, 0, 5\n", expectErr: ErrMalformedRecord},
		{description: "not a number", input: "1, ten, 0, 5, 0, 0, 1\n", expectErr: ErrMalformedRecord},
		{description: "negative value", input: "1, 10, -1, 5, 0, 0, 1\n", expectErr: ErrMalformedRecord},
		{description: "missing comma", input: "1, 10 0, 5, 0, 0, 1\n", expectErr: ErrMalformedRecord},
		{description: "zero service", input: "1, 10, 0, 0, 0, 0, 1\n", expectErr: ErrMalformedRecord},
		{description: "duplicate pid", input: "1, 10, 0, 5, 0, 0, 1\n1, 10, 0, 5, 0, 0, 1\n", expectErr: ErrMalformedRecord},
		{description: "empty", input: "\n# nothing\n", expectErr: ErrEmpty},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := Parse([]byte(testCase.input))
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(location, []byte("1, 10, 0, 5, 0, 0, 1\n"), 0o644))

	srv := New(nil)
	processes, err := srv.Load(context.Background(), location)
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.Equal(t, 1, processes[0].PID)

	_, err = srv.Load(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, ErrUnreadable))
}
