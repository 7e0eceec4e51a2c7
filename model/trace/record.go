// Package trace defines the records emitted by the simulation engine.
package trace

import (
	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/process"
)

// Kind represents a trace record kind
type Kind string

const (
	KindHeader     Kind = "header"
	KindTransition Kind = "transition"
	KindSnapshot   Kind = "snapshot"
	KindFooter     Kind = "footer"
)

// Cause explains why a transition happened
type Cause string

const (
	CauseArrival    Cause = "arrival"
	CauseAdmission  Cause = "admission"
	CauseDispatch   Cause = "dispatch"
	CauseCompletion Cause = "completion"
	CauseIORequest  Cause = "io-request"
	CauseIOComplete Cause = "io-complete"
	CauseQuantum    Cause = "quantum"
	CausePreemption Cause = "preemption"
)

// Transition represents a single process state change
type Transition struct {
	PID   int           `json:"pid"`
	From  process.State `json:"from"`
	To    process.State `json:"to"`
	Cause Cause         `json:"cause,omitempty"`
}

// Record represents one trace entry
type Record struct {
	Kind       Kind             `json:"kind"`
	Tick       int              `json:"tick"`
	Policy     string           `json:"policy,omitempty"`
	Transition *Transition      `json:"transition,omitempty"`
	Snapshot   *memory.Snapshot `json:"snapshot,omitempty"`
}

// Transitions filters transition records, preserving order
func Transitions(records []Record) []Record {
	var ret []Record
	for i := range records {
		if records[i].Kind == KindTransition && records[i].Transition != nil {
			ret = append(ret, records[i])
		}
	}
	return ret
}
