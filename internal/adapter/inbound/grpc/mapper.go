package grpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/0xsj/overwatch-pkg/types"

	identityv1 "github.com/0xsj/overwatch-contracts/gen/go/identity/v1"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

// User mappers

func toProtoUser(user *model.User) *identityv1.User {
	if user == nil {
		return nil
	}

	protoUser := &identityv1.User{
		Id:        user.ID().String(),
		Did:       user.DID().String(),
		Status:    toProtoUserStatus(user.Status()),
		CreatedAt: timestamppb.New(user.CreatedAt().Time()),
		UpdatedAt: timestamppb.New(user.UpdatedAt().Time()),
	}

	if user.Email().IsPresent() {
		email := user.Email().MustGet().String()
		protoUser.Email = &email
	}

	if user.Name().IsPresent() {
		name := user.Name().MustGet()
		protoUser.Name = &name
	}

	return protoUser
}

func toProtoUserStatus(status model.UserStatus) identityv1.UserStatus {
	switch status {
	case model.UserStatusActive:
		return identityv1.UserStatus_USER_STATUS_ACTIVE
	case model.UserStatusSuspended:
		return identityv1.UserStatus_USER_STATUS_SUSPENDED
	default:
		return identityv1.UserStatus_USER_STATUS_UNSPECIFIED
	}
}

// Request mappers

// toOptionalString treats a nil or empty string as absent.
func toOptionalString(s *string) types.Optional[string] {
	if s == nil || *s == "" {
		return types.None[string]()
	}
	return types.Some(*s)
}

// toOptionalEmail treats a nil or empty string as absent and rejects a
// malformed address.
func toOptionalEmail(s *string) (types.Optional[types.Email], error) {
	if s == nil || *s == "" {
		return types.None[types.Email](), nil
	}
	email, err := types.NewEmail(*s)
	if err != nil {
		return types.None[types.Email](), status.Error(codes.InvalidArgument, "invalid email")
	}
	return types.Some(email), nil
}
