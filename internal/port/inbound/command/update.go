package command

import (
	"context"
	"fmt"
)

// Update asks for the aggregate identified by AggregateRootID to be
// overlaid with AggregateRootUpdateDTO. Handlers receive it by pointer and
// never modify it.
type Update[D any, ID comparable] struct {
	AggregateRootID        ID
	AggregateRootUpdateDTO D
}

// NewUpdate creates an Update command.
func NewUpdate[D any, ID comparable](id ID, dto D) *Update[D, ID] {
	return &Update[D, ID]{
		AggregateRootID:        id,
		AggregateRootUpdateDTO: dto,
	}
}

// CommandName is derived from the payload type, e.g. "update.command.UserUpdate".
// It is safe to call on a nil command.
func (c *Update[D, ID]) CommandName() string {
	var dto D
	return fmt.Sprintf("update.%T", dto)
}

// UpdateHandler handles Update commands and returns the affected ID.
type UpdateHandler[D any, ID comparable] interface {
	Handle(ctx context.Context, cmd *Update[D, ID]) (ID, error)
}
