package repository

import (
	"context"
)

// ReadRepository loads aggregates by identifier.
type ReadRepository[A any, ID comparable] interface {
	// GetByID retrieves the aggregate stored under id.
	// Implementations return a not-found error when nothing is stored.
	GetByID(ctx context.Context, id ID) (A, error)
}

// RWRepository loads and persists aggregates by identifier.
// Concurrency control on Update, if any, belongs to the implementation.
type RWRepository[A any, ID comparable] interface {
	ReadRepository[A, ID]

	// Update persists changes to an existing aggregate.
	Update(ctx context.Context, aggregate A) error
}
