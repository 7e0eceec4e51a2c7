package event

import "sync/atomic"

// Listener receives events published after it subscribed until stopped
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	stopped   atomic.Bool
}

// NewListener creates a listener and subscribes it to publisher
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ret := &Listener[T]{
		publisher: publisher,
		handler:   handler,
	}
	publisher.subscribe(ret)
	return ret
}

// Stop unsubscribes the listener
func (l *Listener[T]) Stop() {
	if l.stopped.Swap(true) {
		return
	}
	l.publisher.unsubscribe(l)
}

func (l *Listener[T]) notify(event *Event[T]) {
	if l.stopped.Load() || l.handler == nil {
		return
	}
	l.handler(event)
}
