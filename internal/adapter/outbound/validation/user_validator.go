package validation

import (
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

type userView struct {
	ID     string  `json:"id" validate:"required"`
	DID    string  `json:"did" validate:"required"`
	Email  *string `json:"email" validate:"omitnil,email,max=255"`
	Name   *string `json:"name" validate:"omitnil,min=1,max=100,notblank"`
	Status string  `json:"status" validate:"required,oneof=active suspended"`
}

// NewUserValidator returns the validator for the User aggregate. A nil user
// fails every required rule.
func NewUserValidator() *StructValidator[*model.User] {
	return NewStructValidator(func(u *model.User) any {
		view := &userView{}
		if u == nil {
			return view
		}

		view.ID = u.ID().String()
		if u.DID() != nil {
			view.DID = u.DID().String()
		}
		if u.Email().IsPresent() {
			email := u.Email().MustGet().String()
			view.Email = &email
		}
		if u.Name().IsPresent() {
			name := u.Name().MustGet()
			view.Name = &name
		}
		view.Status = u.Status().String()
		return view
	})
}
