// Package fs persists process control blocks as JSON documents through
// viant/afs, one document per PID.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

// Service implements a filesystem-based process storage
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[int, process.Process] = (*Service)(nil)

// Save persists a process to the filesystem
func (s *Service) Save(ctx context.Context, p *process.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal pid %d: %w", p.PID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.processPath(p.PID)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save process to file %s: %w", filePath, err)
	}
	return nil
}

// Load retrieves a process from the filesystem
func (s *Service) Load(ctx context.Context, pid int) (*process.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, s.processPath(pid))
}

func (s *Service) load(ctx context.Context, filePath string) (*process.Process, error) {
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if process exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", dao.ErrNotFound, filePath)
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read process file: %w", err)
	}
	ret := &process.Process{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process data: %w", err)
	}
	return ret, nil
}

// Delete removes a process from the filesystem
func (s *Service) Delete(ctx context.Context, pid int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.processPath(pid)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if process exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: pid %d", dao.ErrNotFound, pid)
	}
	if err = s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete process file: %w", err)
	}
	return nil
}

// List returns stored processes ordered by PID
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list process files: %w", err)
	}
	var ret []*process.Process
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		p, err := s.load(ctx, join(s.basePath, object.Name()))
		if err != nil {
			return nil, err
		}
		if !criteria.FilterByState(string(p.State), parameters) {
			continue
		}
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].PID < ret[j].PID })
	return ret, nil
}

// processPath returns the file path for a process
func (s *Service) processPath(pid int) string {
	return join(s.basePath, fmt.Sprintf("%d.json", pid))
}

func join(baseURL, name string) string {
	if strings.Contains(baseURL, "://") {
		return url.Join(baseURL, name)
	}
	return path.Join(baseURL, name)
}

// New creates a filesystem process storage service rooted at basePath
func New(ctx context.Context, basePath string, fs afs.Service) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	return &Service{basePath: basePath, fs: fs}, nil
}
