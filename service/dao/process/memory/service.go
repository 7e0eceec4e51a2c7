package memory

import (
	"context"

	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	"github.com/viant/schedsim/service/dao/store"
)

// Service implements an in-memory store for processes keyed by PID. Entities
// are stored by reference: the store is the single authoritative copy.
type Service struct {
	*store.MemoryStore[int, process.Process]
}

var _ dao.Service[int, process.Process] = (*Service)(nil)

// List returns processes filtered by State parameters, in insertion order
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	all, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*process.Process, 0, len(all))
	for _, p := range all {
		if !criteria.FilterByState(string(p.State), parameters) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// New creates an empty process store
func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[int, process.Process](func(p *process.Process) int {
		return p.PID
	})}
}
