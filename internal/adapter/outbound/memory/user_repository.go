package memory

import (
	"context"
	"errors"
	"iter"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

// UserRepository is an in-memory repository.UserRepository with the same
// optimistic version check as the postgres adapter.
type UserRepository struct {
	store *Repository[*model.User, types.ID]
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		store: NewRepository(
			func(u *model.User) types.ID { return u.ID() },
			WithClone[*model.User, types.ID](cloneUser),
			WithNotFound[*model.User, types.ID](domainerror.ErrUserNotFound),
			WithBeforeCreate[*model.User, types.ID](uniqueDID),
			WithBeforeUpdate[*model.User, types.ID](func(stored, next *model.User) error {
				if stored.Version() != next.Version() {
					return domainerror.ErrUserConcurrentModification
				}
				next.AdvanceVersion(stored.Version() + 1)
				return nil
			}),
		),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return domainerror.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id types.ID) (*model.User, error) {
	return r.store.GetByID(ctx, id)
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.store.Update(ctx, user)
}

func (r *UserRepository) FindByDID(ctx context.Context, did string) (*model.User, error) {
	return r.store.Find(ctx, func(u *model.User) bool {
		return u.DID().String() == did
	})
}

func (r *UserRepository) Delete(ctx context.Context, id types.ID) error {
	return r.store.Delete(ctx, id)
}

// uniqueDID rejects a user whose DID is already stored.
func uniqueDID(next *model.User, stored iter.Seq[*model.User]) error {
	did := next.DID().String()
	for u := range stored {
		if u.DID().String() == did {
			return domainerror.ErrUserAlreadyExists
		}
	}
	return nil
}

func cloneUser(u *model.User) *model.User {
	return model.ReconstructUser(
		u.ID(),
		u.DID(),
		u.Email(),
		u.Name(),
		u.Status(),
		u.Version(),
		u.CreatedAt(),
		u.UpdatedAt(),
	)
}
