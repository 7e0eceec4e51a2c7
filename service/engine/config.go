package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
)

var (
	// ErrEmptyWorkload is returned when there is nothing to simulate
	ErrEmptyWorkload = errors.New("engine: empty workload")
	// ErrUnschedulable is returned when a process cannot fit any partition
	ErrUnschedulable = errors.New("engine: process exceeds every partition")
	// ErrTickLimit is returned when a run exceeds the configured tick limit
	ErrTickLimit = errors.New("engine: tick limit exceeded")
	// ErrAllocatorBusy is returned when a run starts with occupied partitions
	ErrAllocatorBusy = errors.New("engine: allocator has occupied partitions")
)

// Config represents engine configuration
type Config struct {
	// MaxTicks stops a run with ErrTickLimit, 0 means unlimited
	MaxTicks int `json:"maxTicks,omitempty" yaml:"maxTicks,omitempty"`
	// TickSpans emits one tracing span per tick with transitions
	TickSpans bool `json:"tickSpans,omitempty" yaml:"tickSpans,omitempty"`
	// StoreURL persists process control blocks as JSON under StoreURL/<runID>
	StoreURL string `json:"storeURL,omitempty" yaml:"storeURL,omitempty"`
}

// Validate checks engine configuration
func (c Config) Validate() error {
	if c.MaxTicks < 0 {
		return fmt.Errorf("engine: invalid max ticks %d", c.MaxTicks)
	}
	return nil
}

// Option represents engine option
type Option func(s *Service)

// WithConfig sets engine configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithMaxTicks sets the tick limit
func WithMaxTicks(maxTicks int) Option {
	return func(s *Service) {
		s.config.MaxTicks = maxTicks
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFs sets the file system used by the persistent process store
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}
