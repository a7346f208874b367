package query

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

// getUserHandler implements query.GetUserHandler.
type getUserHandler struct {
	userRepo  repository.UserRepository
	userCache cache.UserCache
}

// NewGetUserHandler creates a new GetUserHandler. userCache may be nil.
func NewGetUserHandler(
	userRepo repository.UserRepository,
	userCache cache.UserCache,
) query.GetUserHandler {
	return &getUserHandler{
		userRepo:  userRepo,
		userCache: userCache,
	}
}

func (h *getUserHandler) Handle(ctx context.Context, qry query.GetUser) (query.GetUserResult, error) {
	if qry.UserID.IsEmpty() {
		return query.GetUserResult{}, domainerror.ErrUserIDRequired
	}

	if user := h.cached(ctx, qry.UserID); user != nil {
		return query.GetUserResult{User: user}, nil
	}

	user, err := h.userRepo.GetByID(ctx, qry.UserID)
	if err != nil {
		return query.GetUserResult{}, userLookupError(err)
	}

	h.fill(ctx, user)

	return query.GetUserResult{User: user}, nil
}

// cached returns nil on a miss, a cache error, or without a cache.
func (h *getUserHandler) cached(ctx context.Context, id types.ID) *model.User {
	if h.userCache == nil {
		return nil
	}
	user, err := h.userCache.Get(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

func (h *getUserHandler) fill(ctx context.Context, user *model.User) {
	if h.userCache == nil {
		return
	}
	_ = h.userCache.Set(ctx, user, 0) // default TTL
}
