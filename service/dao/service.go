package dao

import (
	"context"
)

// Service represents a keyed store of *T entities
type Service[K comparable, T any] interface {
	// Save stores or overwrites an entity
	Save(ctx context.Context, t *T) error

	// Load returns an entity by key or ErrNotFound
	Load(ctx context.Context, id K) (*T, error)

	// Delete removes an entity by key
	Delete(ctx context.Context, id K) error

	// List returns entities matching all parameters, in insertion order
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
