package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/0xsj/overwatch-pkg/types"
)

// UserIDMetadataKey carries the caller's user ID, set by the trusted gateway.
const UserIDMetadataKey = "x-user-id"

var ErrNoUserIDInContext = errors.New("no user_id in context")

type callerKey struct{}

// WithUserID adds the caller's user ID to the context.
func WithUserID(ctx context.Context, userID types.ID) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// GetUserIDFromContext returns the caller's user ID.
func GetUserIDFromContext(ctx context.Context) (types.ID, error) {
	userID, ok := ctx.Value(callerKey{}).(types.ID)
	if !ok || userID.IsEmpty() {
		return "", ErrNoUserIDInContext
	}
	return userID, nil
}

// UnaryServerCaller copies the caller's user ID from request metadata into
// the context. Requests without a valid ID pass through unchanged and the
// handler decides whether one is required.
func UnaryServerCaller() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(callerContext(ctx), req)
	}
}

// StreamServerCaller is the streaming counterpart of UnaryServerCaller.
func StreamServerCaller() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &callerStream{ServerStream: ss, ctx: callerContext(ss.Context())})
	}
}

func callerContext(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}

	values := md.Get(UserIDMetadataKey)
	if len(values) == 0 {
		return ctx
	}

	userID, err := types.ParseID(values[0])
	if err != nil {
		return ctx
	}

	return WithUserID(ctx, userID)
}

type callerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *callerStream) Context() context.Context {
	return s.ctx
}
