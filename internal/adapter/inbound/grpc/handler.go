package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/0xsj/overwatch-pkg/types"

	identityv1 "github.com/0xsj/overwatch-contracts/gen/go/identity/v1"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
)

// Handler implements identityv1.IdentityServiceServer for the user profile
// operations the kernel owns. Every other method answers Unimplemented.
type Handler struct {
	identityv1.UnimplementedIdentityServiceServer

	// Command handlers
	updateUserHandler command.UpdateUserHandler

	// Query handlers
	getUserHandler      query.GetUserHandler
	getUserByDIDHandler query.GetUserByDIDHandler
}

// HandlerConfig holds all the handlers needed by the gRPC handler.
type HandlerConfig struct {
	UpdateUserHandler   command.UpdateUserHandler
	GetUserHandler      query.GetUserHandler
	GetUserByDIDHandler query.GetUserByDIDHandler
}

// NewHandler creates a new gRPC handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		updateUserHandler:   cfg.UpdateUserHandler,
		getUserHandler:      cfg.GetUserHandler,
		getUserByDIDHandler: cfg.GetUserByDIDHandler,
	}
}

// Health

func (h *Handler) Ping(ctx context.Context, req *identityv1.PingRequest) (*identityv1.PingResponse, error) {
	return &identityv1.PingResponse{Message: "pong"}, nil
}

// User Management

func (h *Handler) GetUser(ctx context.Context, req *identityv1.GetUserRequest) (*identityv1.GetUserResponse, error) {
	userID, err := types.ParseID(req.Id)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	result, err := h.getUserHandler.Handle(ctx, query.GetUser{UserID: userID})
	if err != nil {
		return nil, toGRPCError(err)
	}

	return &identityv1.GetUserResponse{
		User: toProtoUser(result.User),
	}, nil
}

func (h *Handler) GetUserByDID(ctx context.Context, req *identityv1.GetUserByDIDRequest) (*identityv1.GetUserByDIDResponse, error) {
	if req.Did == "" {
		return nil, status.Error(codes.InvalidArgument, "did is required")
	}

	result, err := h.getUserByDIDHandler.Handle(ctx, query.GetUserByDID{DID: req.Did})
	if err != nil {
		return nil, toGRPCError(err)
	}

	return &identityv1.GetUserByDIDResponse{
		User: toProtoUser(result.User),
	}, nil
}

func (h *Handler) UpdateUser(ctx context.Context, req *identityv1.UpdateUserRequest) (*identityv1.UpdateUserResponse, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}

	email, err := toOptionalEmail(req.Email)
	if err != nil {
		return nil, err
	}

	cmd := command.NewUpdate(userID, command.UserUpdate{
		Email: email,
		Name:  toOptionalString(req.Name),
	})

	id, err := h.updateUserHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, toGRPCError(err)
	}

	result, err := h.getUserHandler.Handle(ctx, query.GetUser{UserID: id})
	if err != nil {
		return nil, toGRPCError(err)
	}

	return &identityv1.UpdateUserResponse{
		User: toProtoUser(result.User),
	}, nil
}
