package event

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// UserUpdated is emitted after a user's profile update has been persisted.
type UserUpdated struct {
	BaseEvent
	UserID        types.ID
	UpdatedFields []string
}

// NewUserUpdated creates a new UserUpdated event.
func NewUserUpdated(userID types.ID, updatedFields []string) UserUpdated {
	return UserUpdated{
		BaseEvent:     NewBaseEvent(EventTypeUserUpdated, userID, AggregateTypeUser),
		UserID:        userID,
		UpdatedFields: updatedFields,
	}
}
