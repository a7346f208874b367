package mapping

import (
	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
	portmapping "github.com/0xsj/overwatch-kernel/internal/port/outbound/mapping"
)

// UserMapper overlays a command.UserUpdate onto a User through the aggregate's
// own methods. It modifies and returns the instance it is given.
type UserMapper struct{}

var _ portmapping.Mapper[command.UserUpdate, *model.User] = UserMapper{}

// NewUserMapper creates a UserMapper.
func NewUserMapper() UserMapper {
	return UserMapper{}
}

func (UserMapper) Merge(dto command.UserUpdate, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, domainerror.ErrUserNotFound
	}

	if dto.Email.IsPresent() {
		user.SetEmail(dto.Email.MustGet())
	}

	if dto.Name.IsPresent() {
		user.SetName(dto.Name.MustGet())
	}

	if dto.Status.IsPresent() {
		if err := applyStatus(user, dto.Status.MustGet()); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// applyStatus moves the user to target. Asking for the current status is a
// no-op.
func applyStatus(user *model.User, target model.UserStatus) error {
	if user.Status() == target {
		return nil
	}

	switch target {
	case model.UserStatusActive:
		return user.Activate()
	case model.UserStatusSuspended:
		return user.Suspend()
	default:
		return domainerror.NewValidationError(domainerror.Violation{
			Field:   "status",
			Rule:    "oneof",
			Message: "must be one of [active suspended]",
		})
	}
}
