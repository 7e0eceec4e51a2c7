// Package meta loads configuration and workload assets through viant/afs so
// that any supported storage (local file, mem://, s3://, gs://...) can back
// a simulation.
package meta

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when an asset does not exist
var ErrNotFound = errors.New("meta: asset not found")

// Service represents asset loader
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// FS returns underlying file system service
func (s *Service) FS() afs.Service {
	return s.fs
}

// URL resolves location against the base URL
func (s *Service) URL(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || path.IsAbs(location) {
		return location
	}
	if strings.Contains(s.baseURL, "://") {
		return url.Join(s.baseURL, location)
	}
	return path.Join(s.baseURL, location)
}

// Download returns raw asset content
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	exists, err := s.fs.Exists(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return data, nil
}

// Load decodes YAML (or JSON) asset into target, expanding ${env.KEY} expressions first
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	expanded := expandEnvExpr(string(data))
	if err = yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.URL(location), err)
	}
	return nil
}

// New creates a meta service
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}
