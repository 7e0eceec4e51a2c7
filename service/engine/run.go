package engine

import (
	"context"
	"fmt"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/registry"
	"github.com/viant/schedsim/tracing"
)

const noPID = -1

// run holds the state of a single simulation
type run struct {
	*Service
	id       string
	registry *registry.Service
	ticker   *clock.Ticker
	order    []int // workload order
	ready    []int
	waiting  []int
	running  int
	quantum  int  // ticks used by the running process in its current slice
	unsliced bool // the current slice outlived its quantum with nobody ready
	records  []trace.Record
	span     *tracing.Span
}

func (r *run) loop(ctx context.Context) error {
	if err := r.emit(ctx, trace.Record{Kind: trace.KindHeader, Tick: 0, Policy: r.policy.Name()}); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := r.registry.Completed(ctx)
		if err != nil {
			return err
		}
		if done {
			break
		}
		tick := r.ticker.Tick()
		if r.config.MaxTicks > 0 && tick >= r.config.MaxTicks {
			return fmt.Errorf("%w: %d", ErrTickLimit, r.config.MaxTicks)
		}
		if err = r.step(ctx, tick); err != nil {
			return err
		}
		r.ticker.Advance()
		progress.UpdateCtx(ctx, progress.Delta{Ticks: 1})
	}
	return r.emit(ctx, trace.Record{Kind: trace.KindFooter, Tick: r.ticker.Tick(), Policy: r.policy.Name()})
}

func (r *run) step(ctx context.Context, tick int) (err error) {
	if r.config.TickSpans {
		var span *tracing.Span
		ctx, span = tracing.StartTickSpan(ctx, tick)
		defer func() { tracing.EndSpan(span, err) }()
	}
	if err = r.admit(ctx, tick); err != nil {
		return err
	}
	if err = r.completeIO(ctx, tick); err != nil {
		return err
	}
	if err = r.preempt(ctx, tick); err != nil {
		return err
	}
	if r.running == noPID {
		if err = r.dispatch(ctx, tick); err != nil {
			return err
		}
	}
	return r.execute(ctx, tick)
}

// admit grants memory to arrived processes in workload order
func (r *run) admit(ctx context.Context, tick int) error {
	for _, pid := range r.order {
		p, err := r.registry.Lookup(ctx, pid)
		if err != nil {
			return err
		}
		if p.State != process.StateNotAssigned || p.Arrival > tick {
			continue
		}
		if !r.allocator.TryAssign(p) {
			r.logger.Debug("admission deferred", "tick", tick, "pid", pid, "memory", p.Memory)
			continue
		}
		snapshot := r.allocator.Snapshot()
		r.logger.Debug("admitted", "tick", tick, "pid", pid, "partition", p.Partition, "occupied", snapshot.Occupied())
		if err = r.emit(ctx, trace.Record{Kind: trace.KindSnapshot, Tick: tick, Snapshot: snapshot}); err != nil {
			return err
		}
		if err = r.transition(ctx, tick, p, process.StateNew, trace.CauseArrival); err != nil {
			return err
		}
		p.ResetIO()
		if err = r.transition(ctx, tick, p, process.StateReady, trace.CauseAdmission); err != nil {
			return err
		}
		r.ready = append(r.ready, pid)
		progress.UpdateCtx(ctx, progress.Delta{Admitted: 1, Ready: 1})
	}
	return nil
}

// completeIO moves processes whose I/O finished back to the ready queue
func (r *run) completeIO(ctx context.Context, tick int) error {
	pending := r.waiting[:0:0]
	for _, pid := range r.waiting {
		p, err := r.registry.Lookup(ctx, pid)
		if err != nil {
			return err
		}
		if p.IOCompletion > tick {
			pending = append(pending, pid)
			continue
		}
		p.ResetIO()
		if err = r.transition(ctx, tick, p, process.StateReady, trace.CauseIOComplete); err != nil {
			return err
		}
		r.ready = append(r.ready, pid)
		progress.UpdateCtx(ctx, progress.Delta{Waiting: -1, Ready: 1})
	}
	r.waiting = pending
	return nil
}

// preempt lets a strictly more urgent ready process displace the running one
func (r *run) preempt(ctx context.Context, tick int) error {
	if r.running == noPID || len(r.ready) == 0 {
		return nil
	}
	candidate, err := r.next(ctx)
	if err != nil {
		return err
	}
	current, err := r.registry.Lookup(ctx, r.running)
	if err != nil {
		return err
	}
	if !r.policy.Preempts(candidate, current) {
		return nil
	}
	r.dequeue(candidate.PID)
	if err = r.transition(ctx, tick, current, process.StateReady, trace.CausePreemption); err != nil {
		return err
	}
	r.ready = append(r.ready, current.PID)
	r.running = noPID
	progress.UpdateCtx(ctx, progress.Delta{Running: -1, Ready: 1, Preemptions: 1})
	return r.start(ctx, tick, candidate)
}

// dispatch gives the idle CPU to the most urgent ready process
func (r *run) dispatch(ctx context.Context, tick int) error {
	if len(r.ready) == 0 {
		return nil
	}
	candidate, err := r.next(ctx)
	if err != nil {
		return err
	}
	r.dequeue(candidate.PID)
	return r.start(ctx, tick, candidate)
}

func (r *run) start(ctx context.Context, tick int, p *process.Process) error {
	if err := r.transition(ctx, tick, p, process.StateRunning, trace.CauseDispatch); err != nil {
		return err
	}
	r.running = p.PID
	r.quantum = 0
	r.unsliced = false
	progress.UpdateCtx(ctx, progress.Delta{Ready: -1, Running: 1, Dispatches: 1})
	return nil
}

// execute accounts [tick, tick+1) to the running process and applies its outcome at tick+1
func (r *run) execute(ctx context.Context, tick int) error {
	if r.running == noPID {
		return nil
	}
	p, err := r.registry.Lookup(ctx, r.running)
	if err != nil {
		return err
	}
	p.Execute()
	r.quantum++
	end := r.ticker.Next()

	switch {
	case p.IsDone():
		if err = r.allocator.Release(p); err != nil {
			return err
		}
		if err = r.transition(ctx, end, p, process.StateTerminated, trace.CauseCompletion); err != nil {
			return err
		}
		r.running = noPID
		progress.UpdateCtx(ctx, progress.Delta{Running: -1, Terminated: 1})
	case p.IORequested():
		p.IOCompletion = end + p.IODuration
		if err = r.transition(ctx, end, p, process.StateWaiting, trace.CauseIORequest); err != nil {
			return err
		}
		r.waiting = append(r.waiting, p.PID)
		r.running = noPID
		progress.UpdateCtx(ctx, progress.Delta{Running: -1, Waiting: 1, IOBlocks: 1})
	case r.policy.Quantum() > 0 && !r.unsliced && r.quantum >= r.policy.Quantum():
		if len(r.ready) == 0 {
			// keeps the CPU until it blocks, terminates or is preempted
			r.unsliced = true
			return r.registry.Update(ctx, p)
		}
		if err = r.transition(ctx, end, p, process.StateReady, trace.CauseQuantum); err != nil {
			return err
		}
		r.ready = append(r.ready, p.PID)
		r.running = noPID
		progress.UpdateCtx(ctx, progress.Delta{Running: -1, Ready: 1, Expiries: 1})
	default:
		return r.registry.Update(ctx, p)
	}
	return nil
}

// next returns the most urgent process of the non empty ready queue
func (r *run) next(ctx context.Context) (*process.Process, error) {
	candidates := make([]*process.Process, 0, len(r.ready))
	for _, pid := range r.ready {
		p, err := r.registry.Lookup(ctx, pid)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, p)
	}
	return r.policy.Order(candidates)[0], nil
}

// dequeue removes pid from the ready queue
func (r *run) dequeue(pid int) {
	for i, candidate := range r.ready {
		if candidate == pid {
			r.ready = append(r.ready[:i], r.ready[i+1:]...)
			return
		}
	}
}

// transition applies and records a state change of p, persisting its runtime fields
func (r *run) transition(ctx context.Context, tick int, p *process.Process, to process.State, cause trace.Cause) error {
	from, err := r.registry.Apply(ctx, p, to)
	if err != nil {
		return err
	}
	pid := p.PID
	r.logger.Debug("transition", "tick", tick, "pid", p.PID, "from", from, "to", to, "cause", cause)
	span := r.span
	if tickSpan, ok := tracing.SpanFromContext(ctx); ok && r.config.TickSpans {
		span = tickSpan
	}
	span.AddTransition(tick, pid, string(from), string(to))
	return r.emit(ctx, trace.Record{
		Kind:       trace.KindTransition,
		Tick:       tick,
		Transition: &trace.Transition{PID: pid, From: from, To: to, Cause: cause},
	})
}

// emit appends the record to the trace and publishes it
func (r *run) emit(ctx context.Context, record trace.Record) error {
	r.records = append(r.records, record)
	eventType := string(record.Kind)
	pid := 0
	if record.Transition != nil {
		pid = record.Transition.PID
	}
	e := event.NewEvent(&event.Context{
		RunID:     r.id,
		Policy:    r.policy.Name(),
		Tick:      record.Tick,
		PID:       pid,
		EventType: eventType,
	}, record)
	return r.publisher.Publish(ctx, e)
}
