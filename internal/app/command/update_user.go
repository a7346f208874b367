package command

import (
	"context"
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/event"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/mapping"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/validation"
)

// sideEffectTimeout bounds cache invalidation and publishing after a write.
const sideEffectTimeout = 5 * time.Second

// UserUpdateHandler is the UpdateHandler specialised for user profiles.
type UserUpdateHandler = UpdateHandler[command.UserUpdate, *model.User, types.ID]

// NewUpdateUserHandler creates a new UpdateUserHandler.
//
// After a successful write the cached copy is dropped and a UserUpdated event
// is published. Both steps are best effort and their errors are dropped. They
// run detached from the caller's cancellation so a committed write always
// invalidates the cache.
func NewUpdateUserHandler(
	userRepo repository.UserRepository,
	validator validation.Validator[*model.User],
	mapper mapping.Mapper[command.UserUpdate, *model.User],
	userCache cache.UserCache,
	publisher messaging.EventPublisher,
) (*UserUpdateHandler, error) {
	return NewUpdateHandler[command.UserUpdate, *model.User, types.ID](userRepo, validator, mapper,
		WithOrchestration(func(ctx context.Context, h *UserUpdateHandler, cmd *command.UpdateUser) (types.ID, error) {
			id, err := h.Process(ctx, cmd)
			if err != nil {
				return id, err
			}

			sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
			defer cancel()

			if userCache != nil {
				_ = userCache.Delete(sideCtx, id)
			}

			fields := cmd.AggregateRootUpdateDTO.Fields()
			if publisher != nil && len(fields) > 0 {
				_ = publisher.Publish(sideCtx, event.NewUserUpdated(id, fields))
			}

			return id, nil
		}),
	)
}
