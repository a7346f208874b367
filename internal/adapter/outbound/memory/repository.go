// Package memory provides process-local implementations of the outbound
// repository ports. It backs the "memory" storage driver and tests.
package memory

import (
	"context"
	"iter"
	"maps"
	"sync"

	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

// Option configures a Repository.
type Option[A any, ID comparable] func(r *Repository[A, ID])

// WithClone stores and returns copies produced by fn, so callers never share
// an instance with the store.
func WithClone[A any, ID comparable](fn func(A) A) Option[A, ID] {
	return func(r *Repository[A, ID]) {
		r.clone = fn
	}
}

// WithNotFound sets the error returned when an ID is unknown.
// Defaults to repository.ErrNotFound.
func WithNotFound[A any, ID comparable](err error) Option[A, ID] {
	return func(r *Repository[A, ID]) {
		r.notFound = err
	}
}

// WithBeforeUpdate runs fn under the write lock with the stored and incoming
// aggregates. A non-nil error aborts the update.
func WithBeforeUpdate[A any, ID comparable](fn func(stored, next A) error) Option[A, ID] {
	return func(r *Repository[A, ID]) {
		r.beforeUpdate = fn
	}
}

// WithBeforeCreate runs fn under the write lock with the incoming aggregate
// and the stored ones. A non-nil error aborts the create.
func WithBeforeCreate[A any, ID comparable](fn func(next A, stored iter.Seq[A]) error) Option[A, ID] {
	return func(r *Repository[A, ID]) {
		r.beforeCreate = fn
	}
}

// Repository is a map-backed repository.RWRepository.
type Repository[A any, ID comparable] struct {
	mu    sync.RWMutex
	items map[ID]A

	idOf         func(A) ID
	clone        func(A) A
	notFound     error
	beforeCreate func(next A, stored iter.Seq[A]) error
	beforeUpdate func(stored, next A) error
}

var _ repository.RWRepository[struct{}, string] = (*Repository[struct{}, string])(nil)

// NewRepository creates an empty Repository. idOf extracts an aggregate's ID.
func NewRepository[A any, ID comparable](idOf func(A) ID, opts ...Option[A, ID]) *Repository[A, ID] {
	r := &Repository[A, ID]{
		items:    make(map[ID]A),
		idOf:     idOf,
		clone:    func(a A) A { return a },
		notFound: repository.ErrNotFound,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stores a new aggregate. It returns repository.ErrConflict if the ID
// is taken.
func (r *Repository[A, ID]) Create(ctx context.Context, aggregate A) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.idOf(aggregate)
	if _, ok := r.items[id]; ok {
		return repository.ErrConflict
	}
	if r.beforeCreate != nil {
		if err := r.beforeCreate(aggregate, maps.Values(r.items)); err != nil {
			return err
		}
	}
	r.items[id] = r.clone(aggregate)
	return nil
}

func (r *Repository[A, ID]) GetByID(ctx context.Context, id ID) (A, error) {
	var zero A
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return zero, r.notFound
	}
	return r.clone(a), nil
}

func (r *Repository[A, ID]) Update(ctx context.Context, aggregate A) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.idOf(aggregate)
	stored, ok := r.items[id]
	if !ok {
		return r.notFound
	}
	if r.beforeUpdate != nil {
		if err := r.beforeUpdate(stored, aggregate); err != nil {
			return err
		}
	}
	r.items[id] = r.clone(aggregate)
	return nil
}

// Delete removes the aggregate stored under id.
func (r *Repository[A, ID]) Delete(ctx context.Context, id ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return r.notFound
	}
	delete(r.items, id)
	return nil
}

// Find returns the first stored aggregate matching fn.
func (r *Repository[A, ID]) Find(ctx context.Context, fn func(A) bool) (A, error) {
	var zero A
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if fn(a) {
			return r.clone(a), nil
		}
	}
	return zero, r.notFound
}

// Len returns the number of stored aggregates.
func (r *Repository[A, ID]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
