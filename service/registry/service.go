// Package registry is the authoritative job registry. Every process state
// change goes through it so that the state machine is enforced in one place.
package registry

import (
	"context"
	"fmt"

	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	pmemory "github.com/viant/schedsim/service/dao/process/memory"
)

// Service owns the canonical state of all processes in a run
type Service struct {
	dao dao.Service[int, process.Process]
}

// New creates a registry backed by the supplied store, or an in-memory one when nil
func New(store dao.Service[int, process.Process]) *Service {
	if store == nil {
		store = pmemory.New()
	}
	return &Service{dao: store}
}

// Register stores detached copies of the workload in NOT_ASSIGNED state
func (s *Service) Register(ctx context.Context, workload []*process.Process) error {
	for _, item := range workload {
		if item == nil {
			return dao.ErrNilEntity
		}
		if _, err := s.dao.Load(ctx, item.PID); err == nil {
			return fmt.Errorf("%w: pid %d", dao.ErrDuplicate, item.PID)
		}
		p := item.Clone()
		p.Reset()
		if err := s.dao.Save(ctx, p); err != nil {
			return fmt.Errorf("failed to register pid %d: %w", p.PID, err)
		}
	}
	return nil
}

// Lookup returns the authoritative process for pid
func (s *Service) Lookup(ctx context.Context, pid int) (*process.Process, error) {
	p, err := s.dao.Load(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup pid %d: %w", pid, err)
	}
	return p, nil
}

// Apply transitions p, which must be registered, and persists it with all its runtime fields
func (s *Service) Apply(ctx context.Context, p *process.Process, to process.State) (process.State, error) {
	from, err := p.Transition(to)
	if err != nil {
		return from, err
	}
	if err = s.Update(ctx, p); err != nil {
		return from, err
	}
	return from, nil
}

// List returns processes in registration order, optionally filtered by state
func (s *Service) List(ctx context.Context, states ...process.State) ([]*process.Process, error) {
	if len(states) == 0 {
		return s.dao.List(ctx)
	}
	values := make([]string, 0, len(states))
	for _, state := range states {
		values = append(values, string(state))
	}
	return s.dao.List(ctx, dao.NewParameter(criteria.StateParameter, values...))
}

// Completed returns true when at least one process was admitted, every
// admitted process terminated and nothing is left waiting for admission.
func (s *Service) Completed(ctx context.Context) (bool, error) {
	pending, err := s.List(ctx, process.StateNotAssigned, process.StateNew, process.StateReady, process.StateRunning, process.StateWaiting)
	if err != nil || len(pending) > 0 {
		return false, err
	}
	terminated, err := s.List(ctx, process.StateTerminated)
	if err != nil {
		return false, err
	}
	return len(terminated) > 0, nil
}

// Snapshot returns detached copies of the supplied pids in order, or of all processes when none given
func (s *Service) Snapshot(ctx context.Context, pids ...int) ([]process.Process, error) {
	if len(pids) == 0 {
		all, err := s.dao.List(ctx)
		if err != nil {
			return nil, err
		}
		ret := make([]process.Process, 0, len(all))
		for _, p := range all {
			ret = append(ret, *p)
		}
		return ret, nil
	}
	ret := make([]process.Process, 0, len(pids))
	for _, pid := range pids {
		p, err := s.Lookup(ctx, pid)
		if err != nil {
			return nil, err
		}
		ret = append(ret, *p)
	}
	return ret, nil
}

// Update persists runtime field changes of a registered process
func (s *Service) Update(ctx context.Context, p *process.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if _, err := s.dao.Load(ctx, p.PID); err != nil {
		return fmt.Errorf("failed to update pid %d: %w", p.PID, err)
	}
	return s.dao.Save(ctx, p)
}
