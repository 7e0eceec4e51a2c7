package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/allocator"
	"github.com/viant/schedsim/service/dao"
	pfs "github.com/viant/schedsim/service/dao/process/fs"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/metrics"
	"github.com/viant/schedsim/service/registry"
	"github.com/viant/schedsim/tracing"
)

// Service represents simulation engine
type Service struct {
	allocator *allocator.Service
	policy    policy.Policy
	config    Config
	logger    *slog.Logger
	publisher *event.Publisher[trace.Record]
	fs        afs.Service
}

// Policy returns the scheduling policy
func (s *Service) Policy() policy.Policy {
	return s.policy
}

// Publisher returns the trace record publisher
func (s *Service) Publisher() *event.Publisher[trace.Record] {
	return s.publisher
}

// Run simulates the workload until every process terminated. The workload is
// copied; callers' processes are never modified.
func (s *Service) Run(ctx context.Context, workload []*process.Process) (result *Result, err error) {
	if len(workload) == 0 {
		return nil, ErrEmptyWorkload
	}
	if err = s.config.Validate(); err != nil {
		return nil, err
	}
	for _, p := range workload {
		if p == nil {
			continue
		}
		if !s.allocator.Fits(p.Memory) {
			return nil, fmt.Errorf("%w: pid %d requires %d", ErrUnschedulable, p.PID, p.Memory)
		}
	}
	if s.allocator.InUse() {
		return nil, ErrAllocatorBusy
	}

	runID := idgen.New()
	store, err := s.newStore(ctx, runID)
	if err != nil {
		return nil, err
	}
	jobs := registry.New(store)
	if err = jobs.Register(ctx, workload); err != nil {
		return nil, fmt.Errorf("failed to register workload: %w", err)
	}

	r := &run{
		Service:  s,
		id:       runID,
		registry: jobs,
		ticker:   &clock.Ticker{},
		running:  noPID,
	}
	for _, p := range workload {
		r.order = append(r.order, p.PID)
	}

	ctx, span := tracing.StartSpan(ctx, "simulation.run")
	span.WithAttributes(map[string]string{
		"run.id":    r.id,
		"policy":    s.policy.Name(),
		"processes": strconv.Itoa(len(workload)),
		"memory":    strconv.Itoa(s.allocator.Total()),
	})
	r.span = span
	defer func() {
		if result != nil {
			span.SetInt("ticks", result.Ticks)
		}
		tracing.EndSpan(span, err)
	}()

	s.logger.Info("simulation started", "run", r.id, "policy", s.policy.Name(), "processes", len(workload))
	if err = r.loop(ctx); err != nil {
		s.logger.Error("simulation failed", "run", r.id, "tick", r.ticker.Tick(), "error", err)
		return nil, err
	}

	processes, err := jobs.Snapshot(ctx, r.order...)
	if err != nil {
		return nil, err
	}
	result = &Result{
		RunID:      r.id,
		Policy:     s.policy.Name(),
		Ticks:      r.ticker.Tick(),
		Trace:      r.records,
		Processes:  processes,
		Statistics: metrics.Compute(s.policy.Name(), r.records, processes),
	}
	s.logger.Info("simulation completed", "run", r.id, "ticks", result.Ticks)
	return result, nil
}

// newStore returns a file backed process store when StoreURL is configured, nil otherwise
func (s *Service) newStore(ctx context.Context, runID string) (dao.Service[int, process.Process], error) {
	if s.config.StoreURL == "" {
		return nil, nil
	}
	baseURL := strings.TrimRight(s.config.StoreURL, "/") + "/" + runID
	store, err := pfs.New(ctx, baseURL, s.fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create process store: %w", err)
	}
	return store, nil
}

// New creates an engine
func New(allocatorService *allocator.Service, schedulingPolicy policy.Policy, options ...Option) *Service {
	ret := &Service{
		allocator: allocatorService,
		policy:    schedulingPolicy,
		logger:    slog.Default(),
		publisher: event.NewPublisher[trace.Record](),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
