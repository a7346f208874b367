package query

import (
	"context"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

// getUserByDIDHandler implements query.GetUserByDIDHandler.
// The user cache is keyed by ID only, so DID lookups always hit the repository.
type getUserByDIDHandler struct {
	userRepo repository.UserRepository
}

// NewGetUserByDIDHandler creates a new GetUserByDIDHandler.
func NewGetUserByDIDHandler(userRepo repository.UserRepository) query.GetUserByDIDHandler {
	return &getUserByDIDHandler{userRepo: userRepo}
}

func (h *getUserByDIDHandler) Handle(ctx context.Context, qry query.GetUserByDID) (query.GetUserByDIDResult, error) {
	if qry.DID == "" {
		return query.GetUserByDIDResult{}, domainerror.ErrUserDIDRequired
	}

	user, err := h.userRepo.FindByDID(ctx, qry.DID)
	if err != nil {
		return query.GetUserByDIDResult{}, userLookupError(err)
	}

	return query.GetUserByDIDResult{User: user}, nil
}
