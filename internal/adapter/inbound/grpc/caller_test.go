package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/0xsj/overwatch-pkg/log"
	"github.com/0xsj/overwatch-pkg/types"
)

func TestUnaryServerCaller(t *testing.T) {
	userID := types.NewID()

	tests := []struct {
		name    string
		md      metadata.MD
		wantID  types.ID
		wantErr bool
	}{
		{"valid id", metadata.Pairs(UserIDMetadataKey, userID.String()), userID, false},
		{"invalid id", metadata.Pairs(UserIDMetadataKey, "garbage"), "", true},
		{"missing header", metadata.Pairs("other", "x"), "", true},
		{"no metadata", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			var gotID types.ID
			var gotErr error
			handler := func(ctx context.Context, req any) (any, error) {
				gotID, gotErr = GetUserIDFromContext(ctx)
				return nil, nil
			}

			_, err := UnaryServerCaller()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/identity.v1.IdentityService/UpdateUser"}, handler)
			if err != nil {
				t.Fatalf("interceptor error = %v", err)
			}

			if tt.wantErr {
				if gotErr == nil {
					t.Errorf("expected no user id, got %v", gotID)
				}
				return
			}
			if gotErr != nil {
				t.Fatalf("GetUserIDFromContext() error = %v", gotErr)
			}
			if gotID != tt.wantID {
				t.Errorf("user id = %v, want %v", gotID, tt.wantID)
			}
		})
	}
}

func TestBuildInterceptors(t *testing.T) {
	logger := log.NewPretty(log.DefaultConfig())

	if got := len(BuildUnaryInterceptors(logger)); got != 4 {
		t.Errorf("unary interceptors = %d, want 4", got)
	}
	if got := len(BuildStreamInterceptors(logger)); got != 4 {
		t.Errorf("stream interceptors = %d, want 4", got)
	}
}
