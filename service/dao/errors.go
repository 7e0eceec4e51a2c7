package dao

import "errors"

// Common DAO errors, detect them with errors.Is.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrDuplicate is returned when inserting an entity whose key is taken.
	ErrDuplicate = errors.New("dao: duplicate key")

	// ErrNilEntity is returned when the caller attempts to persist a nil
	// pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
