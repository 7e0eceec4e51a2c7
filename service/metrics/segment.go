package metrics

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
)

// Segment is a contiguous stretch of CPU time held by one process
type Segment struct {
	PID   int `json:"pid"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Length returns the number of ticks covered by the segment
func (s Segment) Length() int {
	return s.End - s.Start
}

// Segments derives RUNNING intervals from trace records, ordered by the tick
// they ended. A process still running at the end of the trace has no segment.
func Segments(records []trace.Record) []Segment {
	var ret []Segment
	started := map[int]int{}
	for _, record := range trace.Transitions(records) {
		t := record.Transition
		switch {
		case t.To == process.StateRunning:
			started[t.PID] = record.Tick
		case t.From == process.StateRunning:
			start, ok := started[t.PID]
			if !ok {
				continue
			}
			ret = append(ret, Segment{PID: t.PID, Start: start, End: record.Tick})
			delete(started, t.PID)
		}
	}
	return ret
}

// RenderSegments writes running segments as a table, one row per segment
func RenderSegments(w io.Writer, segments []Segment) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Start", "End", "Ticks"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, segment := range segments {
		table.Append([]string{
			strconv.Itoa(segment.PID),
			strconv.Itoa(segment.Start),
			strconv.Itoa(segment.End),
			strconv.Itoa(segment.Length()),
		})
	}
	table.Render()
}
