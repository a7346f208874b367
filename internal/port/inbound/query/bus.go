package query

import (
	"context"
)

// Query is a marker interface for all queries.
type Query interface {
	// QueryName returns the name of the query for logging/tracing.
	QueryName() string
}

// Handler handles a specific query type.
type Handler[Q Query, R any] interface {
	Handle(ctx context.Context, qry Q) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Q Query, R any] func(ctx context.Context, qry Q) (R, error)

func (f HandlerFunc[Q, R]) Handle(ctx context.Context, qry Q) (R, error) {
	return f(ctx, qry)
}
