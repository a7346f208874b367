package postgres

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/0xsj/overwatch-pkg/security"
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

// pgtype helpers

func textToOptionalString(t pgtype.Text) types.Optional[string] {
	if t.Valid {
		return types.Some(t.String)
	}
	return types.None[string]()
}

// textToOptionalEmail fails on a stored value that is not a valid address
// rather than reading it as absent, which a later update would write back as NULL.
func textToOptionalEmail(t pgtype.Text) (types.Optional[types.Email], error) {
	if !t.Valid {
		return types.None[types.Email](), nil
	}
	email, err := types.NewEmail(t.String)
	if err != nil {
		return types.None[types.Email](), fmt.Errorf("invalid stored email: %w", err)
	}
	return types.Some(email), nil
}

// optionalString returns nil for an absent value so goqu renders NULL.
func optionalString(o types.Optional[string]) any {
	if o.IsPresent() {
		return o.MustGet()
	}
	return nil
}

func optionalEmail(o types.Optional[types.Email]) any {
	if o.IsPresent() {
		return o.MustGet().String()
	}
	return nil
}

// User mappers

// userRow mirrors a row of the users table.
type userRow struct {
	ID        string
	DID       string
	Email     pgtype.Text
	Name      pgtype.Text
	Status    string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *userRow) scanTargets() []any {
	return []any{&r.ID, &r.DID, &r.Email, &r.Name, &r.Status, &r.Version, &r.CreatedAt, &r.UpdatedAt}
}

func toUserModel(row userRow) (*model.User, error) {
	id, err := types.ParseID(row.ID)
	if err != nil {
		return nil, err
	}

	did, err := security.ParseDID(row.DID)
	if err != nil {
		return nil, err
	}

	email, err := textToOptionalEmail(row.Email)
	if err != nil {
		return nil, err
	}

	return model.ReconstructUser(
		id,
		did,
		email,
		textToOptionalString(row.Name),
		model.UserStatus(row.Status),
		row.Version,
		types.FromTime(row.CreatedAt),
		types.FromTime(row.UpdatedAt),
	), nil
}

func toInsertRecord(user *model.User) goqu.Record {
	return goqu.Record{
		colID:        user.ID().String(),
		colDID:       user.DID().String(),
		colEmail:     optionalEmail(user.Email()),
		colName:      optionalString(user.Name()),
		colStatus:    user.Status().String(),
		colVersion:   user.Version(),
		colCreatedAt: user.CreatedAt().Time(),
		colUpdatedAt: user.UpdatedAt().Time(),
	}
}

func toUpdateRecord(user *model.User) goqu.Record {
	return goqu.Record{
		colEmail:     optionalEmail(user.Email()),
		colName:      optionalString(user.Name()),
		colStatus:    user.Status().String(),
		colVersion:   user.Version() + 1,
		colUpdatedAt: user.UpdatedAt().Time(),
	}
}
