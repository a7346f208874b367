package repository

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	RWRepository[*model.User, types.ID]

	// Create persists a new user.
	Create(ctx context.Context, user *model.User) error

	// FindByDID retrieves a user by their DID.
	FindByDID(ctx context.Context, did string) (*model.User, error)

	// Delete removes a user by ID.
	Delete(ctx context.Context, id types.ID) error
}
