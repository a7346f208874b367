package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsj/overwatch-pkg/security"
	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

func testDID(t *testing.T) *security.DID {
	t.Helper()
	kp, err := security.GenerateEd25519()
	require.NoError(t, err)
	did, err := security.DIDFromKeyPair(kp)
	require.NoError(t, err)
	return did
}

func userWith(t *testing.T, name types.Optional[string], status model.UserStatus) *model.User {
	t.Helper()
	now := types.Now()
	return model.ReconstructUser(types.NewID(), testDID(t), types.None[types.Email](), name, status, 1, now, now)
}

func TestUserValidator(t *testing.T) {
	v := NewUserValidator()

	email, err := types.NewEmail("ada@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		user   func(t *testing.T) *model.User
		fields []string
		rules  []string
	}{
		{
			name: "fresh user is valid",
			user: func(t *testing.T) *model.User {
				u, err := model.NewUser(testDID(t))
				require.NoError(t, err)
				return u
			},
		},
		{
			name: "full profile is valid",
			user: func(t *testing.T) *model.User {
				u := userWith(t, types.Some("Ada Lovelace"), model.UserStatusActive)
				u.SetEmail(email)
				return u
			},
		},
		{
			name: "name at limit counts runes",
			user: func(t *testing.T) *model.User {
				return userWith(t, types.Some(strings.Repeat("é", 100)), model.UserStatusActive)
			},
		},
		{
			name: "empty name",
			user: func(t *testing.T) *model.User {
				return userWith(t, types.Some(""), model.UserStatusActive)
			},
			fields: []string{"name"},
			rules:  []string{"min"},
		},
		{
			name: "blank name",
			user: func(t *testing.T) *model.User {
				return userWith(t, types.Some("   "), model.UserStatusActive)
			},
			fields: []string{"name"},
			rules:  []string{"notblank"},
		},
		{
			name: "name too long",
			user: func(t *testing.T) *model.User {
				return userWith(t, types.Some(strings.Repeat("a", 101)), model.UserStatusActive)
			},
			fields: []string{"name"},
			rules:  []string{"max"},
		},
		{
			name: "unknown status",
			user: func(t *testing.T) *model.User {
				return userWith(t, types.None[string](), model.UserStatus("deleted"))
			},
			fields: []string{"status"},
			rules:  []string{"oneof"},
		},
		{
			name: "several violations are all reported",
			user: func(t *testing.T) *model.User {
				return userWith(t, types.Some(""), model.UserStatus("deleted"))
			},
			fields: []string{"name", "status"},
			rules:  []string{"min", "oneof"},
		},
		{
			name:   "nil user",
			user:   func(t *testing.T) *model.User { return nil },
			fields: []string{"id", "did", "status"},
			rules:  []string{"required", "required", "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.EnsureValid(tt.user(t))

			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *domainerror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields())

			rules := make([]string, 0, len(verr.Violations))
			for _, violation := range verr.Violations {
				rules = append(rules, violation.Rule)
				assert.NotEmpty(t, violation.Message)
			}
			assert.Equal(t, tt.rules, rules)
		})
	}
}

func TestStructValidator_UsesJSONNames(t *testing.T) {
	type payload struct {
		Title string `json:"title" validate:"required"`
		Count int    `validate:"gte=0"`
	}
	v := NewStructValidator(func(p payload) any { return p })

	err := v.EnsureValid(payload{Count: -1})

	var verr *domainerror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title", "Count"}, verr.Fields())
	assert.Contains(t, verr.Error(), "title: is required")
	assert.Contains(t, verr.Error(), `Count: failed "gte"`)
}
