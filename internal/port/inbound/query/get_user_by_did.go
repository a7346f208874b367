package query

import (
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

// GetUserByDID retrieves a user by their DID.
type GetUserByDID struct {
	DID string
}

func (q GetUserByDID) QueryName() string {
	return "kernel.get_user_by_did"
}

// GetUserByDIDResult contains the user.
type GetUserByDIDResult struct {
	User *model.User
}

// GetUserByDIDHandler handles the GetUserByDID query.
type GetUserByDIDHandler = Handler[GetUserByDID, GetUserByDIDResult]
