package command

import (
	"context"
	"reflect"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/mapping"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/validation"
)

// FetchAndMergeFunc loads the aggregate for id and overlays dto onto it.
type FetchAndMergeFunc[D any, A any, ID comparable] func(
	ctx context.Context,
	h *UpdateHandler[D, A, ID],
	id ID,
	dto D,
) (A, error)

// OrchestrationFunc runs a full update for cmd. cmd is never nil.
type OrchestrationFunc[D any, A any, ID comparable] func(
	ctx context.Context,
	h *UpdateHandler[D, A, ID],
	cmd *command.Update[D, ID],
) (ID, error)

// UpdateOption customizes an UpdateHandler.
type UpdateOption[D any, A any, ID comparable] func(h *UpdateHandler[D, A, ID])

// WithFetchAndMerge replaces the fetch-and-merge step.
func WithFetchAndMerge[D any, A any, ID comparable](fn FetchAndMergeFunc[D, A, ID]) UpdateOption[D, A, ID] {
	return func(h *UpdateHandler[D, A, ID]) {
		h.fetchAndMerge = fn
	}
}

// WithOrchestration replaces the whole update sequence. The function can call
// h.Process to run the default sequence and add behavior around it.
func WithOrchestration[D any, A any, ID comparable](fn OrchestrationFunc[D, A, ID]) UpdateOption[D, A, ID] {
	return func(h *UpdateHandler[D, A, ID]) {
		h.orchestrate = fn
	}
}

// UpdateHandler implements command.UpdateHandler for any aggregate type.
//
// The default sequence is fetch, merge, validate, persist. Errors from the
// repository, mapper and validator are returned exactly as produced. The
// handler keeps no state between calls and is safe for concurrent use.
type UpdateHandler[D any, A any, ID comparable] struct {
	repository repository.RWRepository[A, ID]
	validator  validation.Validator[A]
	mapper     mapping.Mapper[D, A]

	fetchAndMerge FetchAndMergeFunc[D, A, ID]
	orchestrate   OrchestrationFunc[D, A, ID]
}

var _ command.UpdateHandler[struct{}, string] = (*UpdateHandler[struct{}, any, string])(nil)

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler[D any, A any, ID comparable](
	repo repository.RWRepository[A, ID],
	validator validation.Validator[A],
	mapper mapping.Mapper[D, A],
	opts ...UpdateOption[D, A, ID],
) (*UpdateHandler[D, A, ID], error) {
	if isNil(repo) {
		return nil, domainerror.ErrRepositoryRequired
	}
	if isNil(validator) {
		return nil, domainerror.ErrValidatorRequired
	}
	if isNil(mapper) {
		return nil, domainerror.ErrMapperRequired
	}

	h := &UpdateHandler[D, A, ID]{
		repository: repo,
		validator:  validator,
		mapper:     mapper,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.fetchAndMerge == nil {
		h.fetchAndMerge = fetchThenMerge[D, A, ID]
	}
	if h.orchestrate == nil {
		h.orchestrate = func(ctx context.Context, h *UpdateHandler[D, A, ID], cmd *command.Update[D, ID]) (ID, error) {
			return h.Process(ctx, cmd)
		}
	}

	return h, nil
}

func (h *UpdateHandler[D, A, ID]) Handle(ctx context.Context, cmd *command.Update[D, ID]) (ID, error) {
	if cmd == nil {
		var zero ID
		return zero, domainerror.ErrCommandRequired
	}

	return h.orchestrate(ctx, h, cmd)
}

// Process runs the default sequence: fetch and merge, validate, persist.
// It returns cmd.AggregateRootID on success.
func (h *UpdateHandler[D, A, ID]) Process(ctx context.Context, cmd *command.Update[D, ID]) (ID, error) {
	var zero ID

	aggregate, err := h.FetchAndMerge(ctx, cmd.AggregateRootID, cmd.AggregateRootUpdateDTO)
	if err != nil {
		return zero, err
	}

	if err := h.validator.EnsureValid(aggregate); err != nil {
		return zero, err
	}

	// Never write once the caller has given up.
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if err := h.repository.Update(ctx, aggregate); err != nil {
		return zero, err
	}

	return cmd.AggregateRootID, nil
}

// FetchAndMerge runs the configured fetch-and-merge step.
func (h *UpdateHandler[D, A, ID]) FetchAndMerge(ctx context.Context, id ID, dto D) (A, error) {
	return h.fetchAndMerge(ctx, h, id, dto)
}

// Repository returns the repository the handler was built with.
func (h *UpdateHandler[D, A, ID]) Repository() repository.RWRepository[A, ID] {
	return h.repository
}

// Validator returns the validator the handler was built with.
func (h *UpdateHandler[D, A, ID]) Validator() validation.Validator[A] {
	return h.validator
}

// Mapper returns the mapper the handler was built with.
func (h *UpdateHandler[D, A, ID]) Mapper() mapping.Mapper[D, A] {
	return h.mapper
}

func fetchThenMerge[D any, A any, ID comparable](ctx context.Context, h *UpdateHandler[D, A, ID], id ID, dto D) (A, error) {
	aggregate, err := h.repository.GetByID(ctx, id)
	if err != nil {
		var zero A
		return zero, err
	}

	return h.mapper.Merge(dto, aggregate)
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// func, map, chan or slice.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
