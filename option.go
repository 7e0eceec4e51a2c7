package schedsim

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
)

// Option represents schedsim service option
type Option func(s *Service)

// WithConfig replaces the configuration; options adjusting single settings must follow it
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithFs sets the file system used for workload and trace IO
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithMetaBaseURL sets the base URL workload locations are resolved against
func WithMetaBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.metaBaseURL = baseURL
	}
}

// WithMetaFsOptions sets storage options used to load workloads
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPolicyMode sets the scheduling policy mode (ep or ep-rr)
func WithPolicyMode(mode string) Option {
	return func(s *Service) {
		s.config.Policy.Mode = mode
	}
}

// WithQuantum sets the round robin quantum
func WithQuantum(quantum int) Option {
	return func(s *Service) {
		s.config.Policy.Quantum = quantum
	}
}

// WithPartitions sets memory partition capacities
func WithPartitions(partitions ...int) Option {
	return func(s *Service) {
		s.config.Memory.Partitions = partitions
	}
}

// WithMaxTicks sets the tick limit
func WithMaxTicks(maxTicks int) Option {
	return func(s *Service) {
		s.config.Engine.MaxTicks = maxTicks
	}
}

// WithOutput sets the trace output location and format
func WithOutput(URL, format string) Option {
	return func(s *Service) {
		if URL != "" {
			s.config.Output.URL = URL
		}
		if format != "" {
			s.config.Output.Format = format
		}
	}
}

// WithListener registers a trace record listener
func WithListener(handler func(e *event.Event[trace.Record])) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, handler)
	}
}

// WithProgress registers a progress callback
func WithProgress(onChange func(progress.Counters)) Option {
	return func(s *Service) {
		s.onProgress = onChange
	}
}

// WithTracing exports OpenTelemetry spans to outputFile (stdout when empty)
func WithTracing(outputFile string) Option {
	return func(s *Service) {
		s.tracing = true
		s.tracingFile = outputFile
	}
}
