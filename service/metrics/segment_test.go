package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
)

func TestSegments(t *testing.T) {
	testCases := []struct {
		description string
		records     []trace.Record
		expect      []Segment
	}{
		{
			description: "sequential runs",
			records:     twoProcessTrace(),
			expect:      []Segment{{PID: 1, Start: 0, End: 5}, {PID: 2, Start: 5, End: 8}},
		},
		{
			description: "every way off the cpu closes a segment",
			records: []trace.Record{
				transition(0, 1, process.StateReady, process.StateRunning, trace.CauseDispatch),
				transition(3, 1, process.StateRunning, process.StateReady, trace.CauseQuantum),
				transition(3, 2, process.StateReady, process.StateRunning, trace.CauseDispatch),
				transition(4, 2, process.StateRunning, process.StateWaiting, trace.CauseIORequest),
				transition(4, 1, process.StateReady, process.StateRunning, trace.CauseDispatch),
				transition(6, 3, process.StateNew, process.StateReady, trace.CauseAdmission),
				transition(6, 1, process.StateRunning, process.StateReady, trace.CausePreemption),
				transition(6, 3, process.StateReady, process.StateRunning, trace.CauseDispatch),
				transition(7, 3, process.StateRunning, process.StateTerminated, trace.CauseCompletion),
			},
			expect: []Segment{
				{PID: 1, Start: 0, End: 3},
				{PID: 2, Start: 3, End: 4},
				{PID: 1, Start: 4, End: 6},
				{PID: 3, Start: 6, End: 7},
			},
		},
		{
			description: "unfinished run has no segment",
			records: []trace.Record{
				transition(0, 1, process.StateReady, process.StateRunning, trace.CauseDispatch),
			},
		},
		{
			description: "no transitions",
			records:     []trace.Record{{Kind: trace.KindHeader}, {Kind: trace.KindFooter}},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Segments(testCase.records))
		})
	}
}

func TestSegment_Length(t *testing.T) {
	assert.Equal(t, 4, Segment{PID: 1, Start: 2, End: 6}.Length())
}

func TestRenderSegments(t *testing.T) {
	buf := bytes.Buffer{}
	RenderSegments(&buf, Segments(twoProcessTrace()))
	output := buf.String()
	assert.Contains(t, output, "START")
	assert.Contains(t, output, "TICKS")
	assert.Contains(t, output, "2 |     5 |   8 |     3 |")
}
