package schedsim

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/allocator"
	"github.com/viant/schedsim/service/engine"
	"github.com/viant/schedsim/service/meta"
	"github.com/viant/schedsim/service/recorder"
)

// Config is a serialisable representation of the simulator configuration. It
// can be populated from YAML or JSON. Omitted sections keep their defaults.
type Config struct {
	Memory allocator.Config `json:"memory" yaml:"memory"`
	Policy policy.Config    `json:"policy" yaml:"policy"`
	Engine engine.Config    `json:"engine" yaml:"engine"`
	Output OutputConfig     `json:"output" yaml:"output"`
}

// OutputConfig controls where and how the execution trace is written
type OutputConfig struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// Disabled skips writing the trace
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// DefaultConfig returns a Config populated with default values
func DefaultConfig() *Config {
	return &Config{
		Memory: allocator.DefaultConfig(),
		Policy: policy.DefaultConfig(),
		Output: OutputConfig{
			URL:    recorder.DefaultURL,
			Format: recorder.FormatText,
		},
	}
}

// Validate returns an error describing the first invalid setting or nil
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Memory.Validate(); err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	if _, err := policy.FromConfig(c.Policy); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	switch c.Output.Format {
	case "", recorder.FormatText, recorder.FormatJSON:
	default:
		return fmt.Errorf("output: %w: %q", recorder.ErrUnknownFormat, c.Output.Format)
	}
	return nil
}

// LoadConfig reads a YAML configuration over the defaults
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(fs, "").Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
