package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsj/overwatch-pkg/security"
	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/inbound/command"
)

func newUser(t *testing.T) *model.User {
	t.Helper()
	kp, err := security.GenerateEd25519()
	require.NoError(t, err)
	did, err := security.DIDFromKeyPair(kp)
	require.NoError(t, err)
	user, err := model.NewUser(did)
	require.NoError(t, err)
	return user
}

func TestUserMapper(t *testing.T) {
	m := NewUserMapper()
	email, err := types.NewEmail("ada@example.com")
	require.NoError(t, err)

	t.Run("applies present fields only", func(t *testing.T) {
		user := newUser(t)
		user.SetName("Before")

		got, err := m.Merge(command.UserUpdate{Email: types.Some(email)}, user)

		require.NoError(t, err)
		assert.Same(t, user, got)
		assert.Equal(t, "ada@example.com", got.Email().MustGet().String())
		assert.Equal(t, "Before", got.Name().MustGet())
		assert.True(t, got.IsActive())
	})

	t.Run("status transitions", func(t *testing.T) {
		user := newUser(t)

		got, err := m.Merge(command.UserUpdate{Status: types.Some(model.UserStatusSuspended)}, user)
		require.NoError(t, err)
		assert.True(t, got.IsSuspended())

		got, err = m.Merge(command.UserUpdate{Status: types.Some(model.UserStatusActive)}, got)
		require.NoError(t, err)
		assert.True(t, got.IsActive())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		user := newUser(t)
		before := user.UpdatedAt()

		got, err := m.Merge(command.UserUpdate{Status: types.Some(model.UserStatusActive)}, user)

		require.NoError(t, err)
		assert.Equal(t, before, got.UpdatedAt())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := m.Merge(command.UserUpdate{Status: types.Some(model.UserStatus("deleted"))}, newUser(t))

		var verr *domainerror.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"status"}, verr.Fields())
	})

	t.Run("nil user", func(t *testing.T) {
		_, err := m.Merge(command.UserUpdate{}, nil)
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})
}
