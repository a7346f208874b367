package command

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

// UserUpdate is the partial payload for a user profile. Absent fields leave
// the stored value untouched.
type UserUpdate struct {
	Email  types.Optional[types.Email]
	Name   types.Optional[string]
	Status types.Optional[model.UserStatus]
}

// Fields lists the payload fields that are present.
func (u UserUpdate) Fields() []string {
	var fields []string
	if u.Email.IsPresent() {
		fields = append(fields, "email")
	}
	if u.Name.IsPresent() {
		fields = append(fields, "name")
	}
	if u.Status.IsPresent() {
		fields = append(fields, "status")
	}
	return fields
}

// UpdateUser updates a user's profile.
type UpdateUser = Update[UserUpdate, types.ID]

// UpdateUserHandler handles the UpdateUser command.
type UpdateUserHandler = UpdateHandler[UserUpdate, types.ID]
