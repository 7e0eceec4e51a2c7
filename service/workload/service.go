// Package workload loads the batch of processes to simulate.
package workload

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/meta"
)

// ErrUnreadable is returned when the workload location cannot be read
var ErrUnreadable = errors.New("workload: unreadable input")

// Service loads workloads
type Service struct {
	meta *meta.Service
}

// Load reads and parses a workload file
func (s *Service) Load(ctx context.Context, URL string) ([]*process.Process, error) {
	data, err := s.meta.Download(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	processes, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", URL, err)
	}
	return processes, nil
}

// New creates a workload service
func New(metaService *meta.Service) *Service {
	if metaService == nil {
		metaService = meta.New(nil, "")
	}
	return &Service{meta: metaService}
}
