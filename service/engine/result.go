package engine

import (
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/metrics"
)

// Result represents a completed simulation run
type Result struct {
	RunID      string              `json:"runID"`
	Policy     string              `json:"policy"`
	Ticks      int                 `json:"ticks"`
	Trace      []trace.Record      `json:"trace"`
	Processes  []process.Process   `json:"processes"`
	Statistics *metrics.Statistics `json:"statistics,omitempty"`
}

// Transitions returns transition records only
func (r *Result) Transitions() []trace.Record {
	return trace.Transitions(r.Trace)
}

