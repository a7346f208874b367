package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/0xsj/overwatch-pkg/security"
	"github.com/0xsj/overwatch-pkg/types"

	identityv1 "github.com/0xsj/overwatch-contracts/gen/go/identity/v1"
	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
)

// --- Ping Tests ---

func TestHandler_Ping(t *testing.T) {
	handler := NewHandler(HandlerConfig{})

	resp, err := handler.Ping(context.Background(), &identityv1.PingRequest{})

	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if resp.Message != "pong" {
		t.Errorf("Message = %v, want pong", resp.Message)
	}
}

// --- GetUser Tests ---

func TestHandler_GetUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		user := createTestUser(t)
		handler := NewHandler(HandlerConfig{
			GetUserHandler: &mockGetUserHandler{result: query.GetUserResult{User: user}},
		})

		resp, err := handler.GetUser(context.Background(), &identityv1.GetUserRequest{Id: user.ID().String()})

		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if resp.User.Id != user.ID().String() {
			t.Errorf("User.Id = %v, want %v", resp.User.Id, user.ID())
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		handler := NewHandler(HandlerConfig{GetUserHandler: &mockGetUserHandler{}})

		_, err := handler.GetUser(context.Background(), &identityv1.GetUserRequest{Id: "not-an-id"})

		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("not found", func(t *testing.T) {
		handler := NewHandler(HandlerConfig{
			GetUserHandler: &mockGetUserHandler{err: domainerror.ErrUserNotFound},
		})

		_, err := handler.GetUser(context.Background(), &identityv1.GetUserRequest{Id: types.NewID().String()})

		assertCode(t, err, codes.NotFound)
	})
}

// --- GetUserByDID Tests ---

func TestHandler_GetUserByDID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		user := createTestUser(t)
		mock := &mockGetUserByDIDHandler{result: query.GetUserByDIDResult{User: user}}
		handler := NewHandler(HandlerConfig{GetUserByDIDHandler: mock})

		resp, err := handler.GetUserByDID(context.Background(), &identityv1.GetUserByDIDRequest{Did: user.DID().String()})

		if err != nil {
			t.Fatalf("GetUserByDID() error = %v", err)
		}
		if resp.User.Did != user.DID().String() {
			t.Errorf("User.Did = %v, want %v", resp.User.Did, user.DID())
		}
		if mock.received.DID != user.DID().String() {
			t.Errorf("query DID = %v, want %v", mock.received.DID, user.DID())
		}
	})

	t.Run("empty did", func(t *testing.T) {
		handler := NewHandler(HandlerConfig{GetUserByDIDHandler: &mockGetUserByDIDHandler{}})

		_, err := handler.GetUserByDID(context.Background(), &identityv1.GetUserByDIDRequest{})

		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("not found", func(t *testing.T) {
		handler := NewHandler(HandlerConfig{
			GetUserByDIDHandler: &mockGetUserByDIDHandler{err: domainerror.ErrUserNotFound},
		})

		_, err := handler.GetUserByDID(context.Background(), &identityv1.GetUserByDIDRequest{Did: "did:key:z6MkMissing"})

		assertCode(t, err, codes.NotFound)
	})
}

// --- UpdateUser Tests ---

func TestHandler_UpdateUser(t *testing.T) {
	t.Run("success dispatches update and reads back", func(t *testing.T) {
		user := createTestUser(t)
		update := &mockUpdateUserHandler{}
		handler := NewHandler(HandlerConfig{
			UpdateUserHandler: update,
			GetUserHandler:    &mockGetUserHandler{result: query.GetUserResult{User: user}},
		})

		email := "ada@example.com"
		name := "Ada"
		resp, err := handler.UpdateUser(WithUserID(context.Background(), user.ID()), &identityv1.UpdateUserRequest{
			Email: &email,
			Name:  &name,
		})

		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if resp.User.Id != user.ID().String() {
			t.Errorf("User.Id = %v, want %v", resp.User.Id, user.ID())
		}
		if update.received == nil {
			t.Fatal("update handler was not called")
		}
		if update.received.AggregateRootID != user.ID() {
			t.Errorf("AggregateRootID = %v, want %v", update.received.AggregateRootID, user.ID())
		}
		dto := update.received.AggregateRootUpdateDTO
		if dto.Email.MustGet().String() != email {
			t.Errorf("Email = %v, want %v", dto.Email.MustGet(), email)
		}
		if dto.Name.MustGet() != name {
			t.Errorf("Name = %v, want %v", dto.Name.MustGet(), name)
		}
		if dto.Status.IsPresent() {
			t.Error("Status should be absent")
		}
	})

	t.Run("empty fields are absent", func(t *testing.T) {
		user := createTestUser(t)
		update := &mockUpdateUserHandler{}
		handler := NewHandler(HandlerConfig{
			UpdateUserHandler: update,
			GetUserHandler:    &mockGetUserHandler{result: query.GetUserResult{User: user}},
		})

		empty := ""
		_, err := handler.UpdateUser(WithUserID(context.Background(), user.ID()), &identityv1.UpdateUserRequest{Name: &empty})

		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if len(update.received.AggregateRootUpdateDTO.Fields()) != 0 {
			t.Errorf("Fields() = %v, want none", update.received.AggregateRootUpdateDTO.Fields())
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		update := &mockUpdateUserHandler{}
		handler := NewHandler(HandlerConfig{UpdateUserHandler: update})

		_, err := handler.UpdateUser(context.Background(), &identityv1.UpdateUserRequest{})

		assertCode(t, err, codes.Unauthenticated)
		if update.received != nil {
			t.Error("update handler should not be called")
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		update := &mockUpdateUserHandler{}
		handler := NewHandler(HandlerConfig{UpdateUserHandler: update})

		bad := "not-an-email"
		_, err := handler.UpdateUser(WithUserID(context.Background(), types.NewID()), &identityv1.UpdateUserRequest{Email: &bad})

		assertCode(t, err, codes.InvalidArgument)
		if update.received != nil {
			t.Error("update handler should not be called")
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		handler := NewHandler(HandlerConfig{
			UpdateUserHandler: &mockUpdateUserHandler{
				err: domainerror.NewValidationError(domainerror.Violation{Field: "name", Rule: "max"}),
			},
		})

		name := "x"
		_, err := handler.UpdateUser(WithUserID(context.Background(), types.NewID()), &identityv1.UpdateUserRequest{Name: &name})

		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("concurrent modification", func(t *testing.T) {
		handler := NewHandler(HandlerConfig{
			UpdateUserHandler: &mockUpdateUserHandler{err: domainerror.ErrUserConcurrentModification},
		})

		name := "x"
		_, err := handler.UpdateUser(WithUserID(context.Background(), types.NewID()), &identityv1.UpdateUserRequest{Name: &name})

		assertCode(t, err, codes.AlreadyExists)
	})
}

// --- Helpers ---

func createTestUser(t *testing.T) *model.User {
	t.Helper()
	kp, err := security.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519() error = %v", err)
	}
	did, err := security.DIDFromKeyPair(kp)
	if err != nil {
		t.Fatalf("DIDFromKeyPair() error = %v", err)
	}
	user, err := model.NewUser(did)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	return user
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", want)
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected gRPC status error, got %T", err)
	}
	if st.Code() != want {
		t.Errorf("code = %v, want %v", st.Code(), want)
	}
}

// --- Mocks ---

type mockUpdateUserHandler struct {
	received *command.UpdateUser
	err      error
}

func (m *mockUpdateUserHandler) Handle(ctx context.Context, cmd *command.UpdateUser) (types.ID, error) {
	m.received = cmd
	if m.err != nil {
		return "", m.err
	}
	return cmd.AggregateRootID, nil
}

type mockGetUserHandler struct {
	result query.GetUserResult
	err    error
}

func (m *mockGetUserHandler) Handle(ctx context.Context, qry query.GetUser) (query.GetUserResult, error) {
	return m.result, m.err
}

type mockGetUserByDIDHandler struct {
	received query.GetUserByDID
	result   query.GetUserByDIDResult
	err      error
}

func (m *mockGetUserByDIDHandler) Handle(ctx context.Context, qry query.GetUserByDID) (query.GetUserByDIDResult, error) {
	m.received = qry
	return m.result, m.err
}
