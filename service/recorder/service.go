// Package recorder collects trace records published by the engine and
// writes them in the execution table layout or as JSON lines.
package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/event"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"

	// DefaultURL is the default trace location
	DefaultURL = "output_files/execution.txt"
)

// ErrUnknownFormat is returned for unsupported output formats
var ErrUnknownFormat = errors.New("recorder: unknown format")

// Service collects trace records
type Service struct {
	format   string
	fs       afs.Service
	mu       sync.Mutex
	records  []trace.Record
	listener *event.Listener[trace.Record]
}

// Attach subscribes the recorder to publisher
func (s *Service) Attach(publisher *event.Publisher[trace.Record]) {
	s.Detach()
	s.listener = publisher.Subscribe(s.handle)
}

// Detach stops receiving records
func (s *Service) Detach() {
	if s.listener != nil {
		s.listener.Stop()
		s.listener = nil
	}
}

func (s *Service) handle(e *event.Event[trace.Record]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, e.Data)
}

// Records returns collected records
func (s *Service) Records() []trace.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]trace.Record, len(s.records))
	copy(ret, s.records)
	return ret
}

// Reset drops collected records
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Bytes renders collected records
func (s *Service) Bytes() ([]byte, error) {
	buf := bytes.Buffer{}
	if err := Render(&buf, s.format, s.Records()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders collected records and uploads them to URL
func (s *Service) Write(ctx context.Context, URL string) error {
	if URL == "" {
		URL = DefaultURL
	}
	data, err := s.Bytes()
	if err != nil {
		return err
	}
	parent, _ := url.Split(URL, file.Scheme)
	if exists, _ := s.fs.Exists(ctx, parent); !exists {
		if err = s.fs.Create(ctx, parent, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("failed to create %s: %w", parent, err)
		}
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write trace %s: %w", URL, err)
	}
	return nil
}

// New creates a recorder
func New(format string, fs afs.Service) (*Service, error) {
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if fs == nil {
		fs = afs.New()
	}
	return &Service{format: format, fs: fs}, nil
}
