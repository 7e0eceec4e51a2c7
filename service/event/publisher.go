package event

import (
	"context"
	"sync"
)

// Publisher delivers events synchronously to its listeners, in subscription
// order. Publish returns once every listener handled the event, which keeps
// the delivered sequence identical to the produced one.
type Publisher[T any] struct {
	mu        sync.RWMutex
	listeners []*Listener[T]
}

// NewPublisher creates a publisher
func NewPublisher[T any]() *Publisher[T] {
	return &Publisher[T]{}
}

// Publish delivers event to all listeners
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.RLock()
	listeners := make([]*Listener[T], len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.RUnlock()
	for _, listener := range listeners {
		listener.notify(event)
	}
	return nil
}

// Subscribe registers handler and returns its listener
func (p *Publisher[T]) Subscribe(handler func(*Event[T])) *Listener[T] {
	return NewListener[T](p, handler)
}

func (p *Publisher[T]) subscribe(listener *Listener[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, listener)
}

func (p *Publisher[T]) unsubscribe(listener *Listener[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, candidate := range p.listeners {
		if candidate == listener {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}
