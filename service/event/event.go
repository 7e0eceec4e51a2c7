package event

import (
	"time"

	"github.com/viant/schedsim/internal/clock"
)

// Context identifies where an event comes from
type Context struct {
	RunID     string `json:"runID"`
	Policy    string `json:"policy,omitempty"`
	Tick      int    `json:"tick"`
	PID       int    `json:"pid,omitempty"`
	EventType string `json:"eventType"`
}

// Event wraps a payload with its origin
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
