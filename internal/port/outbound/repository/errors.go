package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity is not found.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a write loses an optimistic concurrency check.
	ErrConflict = errors.New("entity was modified concurrently")
)
