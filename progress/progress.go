// Package progress keeps aggregated counters for a single simulation run
// (processes admitted, running, terminated, dispatches, ...). The tracker
// lives in the run context so any component receiving the context can update
// the counters via the Delta helper.
package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change. Fields are signed.
type Delta struct {
	Admitted    int
	Ready       int
	Running     int
	Waiting     int
	Terminated  int
	Dispatches  int
	Preemptions int
	Expiries    int
	IOBlocks    int
	Ticks       int
}

// Counters is a point in time copy of the run counters.
type Counters struct {
	RunID     string
	Policy    string
	Total     int
	StartedAt time.Time

	Tick        int
	Admitted    int
	Ready       int
	Running     int
	Waiting     int
	Terminated  int
	Dispatches  int
	Preemptions int
	Expiries    int
	IOBlocks    int
}

// Done reports whether every process of the run has terminated.
func (c Counters) Done() bool {
	return c.Total > 0 && c.Terminated == c.Total
}

func (c *Counters) apply(d Delta) {
	c.Tick += d.Ticks
	c.Admitted += d.Admitted
	c.Ready += d.Ready
	c.Running += d.Running
	c.Waiting += d.Waiting
	c.Terminated += d.Terminated
	c.Dispatches += d.Dispatches
	c.Preemptions += d.Preemptions
	c.Expiries += d.Expiries
	c.IOBlocks += d.IOBlocks
}

// Progress keeps aggregated run counters. It is safe for concurrent use.
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// Update applies the supplied delta. The onChange callback, if any, is invoked
// with a copy outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.counters.apply(d)
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Done reports whether every process of the run has terminated.
func (p *Progress) Done() bool {
	return p.Snapshot().Done()
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID, policy string, total int, onChange func(Counters)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		counters: Counters{
			RunID:     runID,
			Policy:    policy,
			Total:     total,
			StartedAt: time.Now(),
		},
		onChange: onChange,
	}
	return WithTracker(ctx, tr), tr
}

// WithTracker embeds an existing tracker in ctx.
func WithTracker(ctx context.Context, tr *Progress) context.Context {
	return context.WithValue(ctx, trackerKey, tr)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
