// Package metrics derives per-process and run-wide scheduling statistics
// from a simulation trace.
package metrics

import (
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
)

// NotObserved marks a tick that never appeared in the trace
const NotObserved = -1

// ProcessStats represents timing of a single process
type ProcessStats struct {
	PID         int `json:"pid"`
	Priority    int `json:"priority"`
	Arrival     int `json:"arrival"`
	Service     int `json:"service"`
	Admission   int `json:"admission"`
	FirstRun    int `json:"firstRun"`
	Termination int `json:"termination"`
	Response    int `json:"response"`
	Waiting     int `json:"waiting"`
	Turnaround  int `json:"turnaround"`
	Dispatches  int `json:"dispatches"`
	IOBlocks    int `json:"ioBlocks"`
}

// Statistics represents run-wide statistics
type Statistics struct {
	Policy        string         `json:"policy"`
	Processes     []ProcessStats `json:"processes"`
	Makespan      int            `json:"makespan"`
	Throughput    float64        `json:"throughput"`
	AvgResponse   float64        `json:"avgResponse"`
	AvgWaiting    float64        `json:"avgWaiting"`
	AvgTurnaround float64        `json:"avgTurnaround"`
	Dispatches    int            `json:"dispatches"`
	Preemptions   int            `json:"preemptions"`
	Expiries      int            `json:"expiries"`
	IOBlocks      int            `json:"ioBlocks"`
	Segments      []Segment      `json:"segments,omitempty"`
}

// Compute derives statistics from trace records. Processes define the
// reporting order and supply arrival and service times.
func Compute(policy string, records []trace.Record, processes []process.Process) *Statistics {
	ret := &Statistics{Policy: policy, Segments: Segments(records)}
	index := make(map[int]int, len(processes))
	readySince := make(map[int]int, len(processes))
	for i, p := range processes {
		index[p.PID] = i
		ret.Processes = append(ret.Processes, ProcessStats{
			PID:         p.PID,
			Priority:    p.Priority,
			Arrival:     p.Arrival,
			Service:     p.Service,
			Admission:   NotObserved,
			FirstRun:    NotObserved,
			Termination: NotObserved,
		})
	}

	for _, record := range trace.Transitions(records) {
		t := record.Transition
		i, ok := index[t.PID]
		if !ok {
			continue
		}
		stats := &ret.Processes[i]
		switch t.To {
		case process.StateNew:
			stats.Admission = record.Tick
		case process.StateReady:
			readySince[t.PID] = record.Tick
			switch t.Cause {
			case trace.CausePreemption:
				ret.Preemptions++
			case trace.CauseQuantum:
				ret.Expiries++
			}
		case process.StateRunning:
			if stats.FirstRun == NotObserved {
				stats.FirstRun = record.Tick
			}
			if since, ok := readySince[t.PID]; ok {
				stats.Waiting += record.Tick - since
				delete(readySince, t.PID)
			}
			stats.Dispatches++
			ret.Dispatches++
		case process.StateWaiting:
			stats.IOBlocks++
			ret.IOBlocks++
		case process.StateTerminated:
			stats.Termination = record.Tick
			if record.Tick > ret.Makespan {
				ret.Makespan = record.Tick
			}
		}
	}

	var response, waiting, turnaround, finished int
	for i := range ret.Processes {
		stats := &ret.Processes[i]
		if stats.FirstRun != NotObserved {
			stats.Response = stats.FirstRun - stats.Arrival
		}
		if stats.Termination == NotObserved {
			continue
		}
		stats.Turnaround = stats.Termination - stats.Arrival
		finished++
		response += stats.Response
		waiting += stats.Waiting
		turnaround += stats.Turnaround
	}
	if finished > 0 {
		ret.AvgResponse = float64(response) / float64(finished)
		ret.AvgWaiting = float64(waiting) / float64(finished)
		ret.AvgTurnaround = float64(turnaround) / float64(finished)
	}
	if ret.Makespan > 0 {
		ret.Throughput = float64(finished) / float64(ret.Makespan)
	}
	return ret
}
