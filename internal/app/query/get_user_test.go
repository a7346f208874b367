package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsj/overwatch-pkg/security"
	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/query"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-kernel/internal/testutil/mocks"
)

func createTestUser(t *testing.T) *model.User {
	t.Helper()
	kp, err := security.GenerateEd25519()
	require.NoError(t, err)
	did, err := security.DIDFromKeyPair(kp)
	require.NoError(t, err)
	user, err := model.NewUser(did)
	require.NoError(t, err)
	return user
}

func TestGetUserHandler(t *testing.T) {
	t.Run("requires id", func(t *testing.T) {
		h := NewGetUserHandler(mocks.NewUserRepository(), nil)

		_, err := h.Handle(context.Background(), query.GetUser{})

		assert.ErrorIs(t, err, domainerror.ErrUserIDRequired)
	})

	t.Run("serves from cache", func(t *testing.T) {
		repo := mocks.NewUserRepository()
		userCache := mocks.NewUserCache()
		user := createTestUser(t)
		require.NoError(t, userCache.Set(context.Background(), user, 0))

		h := NewGetUserHandler(repo, userCache)
		result, err := h.Handle(context.Background(), query.GetUser{UserID: user.ID()})

		require.NoError(t, err)
		assert.Same(t, user, result.User)
		assert.Zero(t, repo.Calls.GetByID)
	})

	t.Run("falls back to repository and fills cache", func(t *testing.T) {
		repo := mocks.NewUserRepository()
		userCache := mocks.NewUserCache()
		user := createTestUser(t)
		repo.AddUser(user)

		h := NewGetUserHandler(repo, userCache)
		result, err := h.Handle(context.Background(), query.GetUser{UserID: user.ID()})

		require.NoError(t, err)
		assert.Equal(t, user.ID(), result.User.ID())
		assert.Equal(t, 1, repo.Calls.GetByID)
		assert.True(t, userCache.Has(user.ID()))
	})

	t.Run("cache errors fall through", func(t *testing.T) {
		repo := mocks.NewUserRepository()
		userCache := mocks.NewUserCache()
		userCache.Errors.Get = errors.New("redis down")
		user := createTestUser(t)
		repo.AddUser(user)

		h := NewGetUserHandler(repo, userCache)
		_, err := h.Handle(context.Background(), query.GetUser{UserID: user.ID()})

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		h := NewGetUserHandler(mocks.NewUserRepository(), mocks.NewUserCache())

		_, err := h.Handle(context.Background(), query.GetUser{UserID: types.NewID()})

		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})

	t.Run("generic not found is normalised", func(t *testing.T) {
		repo := mocks.NewUserRepository()
		repo.Errors.GetByID = repository.ErrNotFound

		h := NewGetUserHandler(repo, nil)
		_, err := h.Handle(context.Background(), query.GetUser{UserID: types.NewID()})

		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})

	t.Run("infrastructure errors pass through", func(t *testing.T) {
		boom := errors.New("connection refused")
		repo := mocks.NewUserRepository()
		repo.Errors.GetByID = boom

		h := NewGetUserHandler(repo, nil)
		_, err := h.Handle(context.Background(), query.GetUser{UserID: types.NewID()})

		assert.Same(t, boom, err)
	})
}

func TestGetUserByDIDHandler(t *testing.T) {
	repo := mocks.NewUserRepository()
	user := createTestUser(t)
	repo.AddUser(user)
	h := NewGetUserByDIDHandler(repo)

	t.Run("requires did", func(t *testing.T) {
		_, err := h.Handle(context.Background(), query.GetUserByDID{})
		assert.ErrorIs(t, err, domainerror.ErrUserDIDRequired)
	})

	t.Run("finds user", func(t *testing.T) {
		result, err := h.Handle(context.Background(), query.GetUserByDID{DID: user.DID().String()})
		require.NoError(t, err)
		assert.Equal(t, user.ID(), result.User.ID())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := h.Handle(context.Background(), query.GetUserByDID{DID: "did:key:zUnknown"})
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})
}
