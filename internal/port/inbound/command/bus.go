package command

import (
	"context"
)

// Command is a marker interface for all commands.
type Command interface {
	// CommandName returns the name of the command for logging/tracing.
	CommandName() string
}

// Handler handles a specific command type.
type Handler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}
