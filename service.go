package schedsim

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/allocator"
	"github.com/viant/schedsim/service/engine"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/meta"
	"github.com/viant/schedsim/service/recorder"
	"github.com/viant/schedsim/service/workload"
	"github.com/viant/schedsim/tracing"
)

// Version is reported with exported spans
const Version = "0.1.0"

// Service represents the simulator façade
type Service struct {
	config        *Config
	fs            afs.Service
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	logger        *slog.Logger
	listeners     []func(e *event.Event[trace.Record])
	onProgress    func(progress.Counters)
	tracing       bool
	tracingFile   string
	tracingErr    error
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Run loads the workload from URL, simulates it and writes the trace to the
// configured output.
func (s *Service) Run(ctx context.Context, workloadURL string) (*engine.Result, error) {
	processes, err := workload.New(s.metaService).Load(ctx, workloadURL)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.config, processes, !s.config.Output.Disabled)
}

// Simulate runs an in-memory workload without writing any output
func (s *Service) Simulate(ctx context.Context, processes []*process.Process) (*engine.Result, error) {
	return s.run(ctx, s.config, processes, false)
}

// Compare simulates the workload at URL once per policy mode, external
// priority and round robin when no mode is given. No trace is written.
func (s *Service) Compare(ctx context.Context, workloadURL string, modes ...string) ([]*engine.Result, error) {
	processes, err := workload.New(s.metaService).Load(ctx, workloadURL)
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		modes = []string{policy.ModePriority, policy.ModePriorityRoundRobin}
	}
	ret := make([]*engine.Result, 0, len(modes))
	for _, mode := range modes {
		config := *s.config
		config.Policy.Mode = mode
		result, err := s.run(ctx, &config, processes, false)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate %s: %w", mode, err)
		}
		ret = append(ret, result)
	}
	return ret, nil
}

func (s *Service) run(ctx context.Context, config *Config, processes []*process.Process, write bool) (*engine.Result, error) {
	if s.tracingErr != nil {
		return nil, fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	allocatorService, err := allocator.New(config.Memory)
	if err != nil {
		return nil, err
	}
	schedulingPolicy, err := policy.FromConfig(config.Policy)
	if err != nil {
		return nil, err
	}

	fs := s.metaService.FS()
	simulator := engine.New(allocatorService, schedulingPolicy,
		engine.WithConfig(config.Engine),
		engine.WithLogger(s.logger),
		engine.WithFs(fs))
	publisher := simulator.Publisher()
	for _, handler := range s.listeners {
		listener := publisher.Subscribe(handler)
		defer listener.Stop()
	}
	var traceRecorder *recorder.Service
	if write {
		if traceRecorder, err = recorder.New(config.Output.Format, fs); err != nil {
			return nil, err
		}
		traceRecorder.Attach(publisher)
		defer traceRecorder.Detach()
	}
	if s.onProgress != nil {
		ctx, _ = progress.WithNewTracker(ctx, "", simulator.Policy().Name(), len(processes), s.onProgress)
	}
	result, err := simulator.Run(ctx, processes)
	if err != nil {
		return nil, err
	}
	if traceRecorder != nil {
		if err = traceRecorder.Write(ctx, config.Output.URL); err != nil {
			return nil, err
		}
		s.logger.Info("trace written", "url", config.Output.URL, "format", config.Output.Format)
	}
	return result, nil
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.metaService == nil {
		s.metaService = meta.New(s.fs, s.metaBaseURL, s.metaFsOptions...)
	}
	if s.tracing {
		s.tracingErr = tracing.Init("schedsim", Version, s.tracingFile)
	}
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
}

// New creates a simulator service
func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	ret.init(options)
	return ret
}
