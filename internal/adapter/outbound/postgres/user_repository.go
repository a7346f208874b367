package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

const (
	dialectPostgres = "postgres"
	tableUsers      = "users"

	colID        = "id"
	colDID       = "did"
	colEmail     = "email"
	colName      = "name"
	colStatus    = "status"
	colVersion   = "version"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"

	pgUniqueViolation = "23505"
)

var userColumns = []any{colID, colDID, colEmail, colName, colStatus, colVersion, colCreatedAt, colUpdatedAt}

// userRepository implements repository.UserRepository.
type userRepository struct {
	pool    *pgxpool.Pool
	builder goqu.DialectWrapper
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{
		pool:    pool,
		builder: goqu.Dialect(dialectPostgres),
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query, args, err := r.builder.
		Insert(tableUsers).
		Rows(toInsertRecord(user)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domainerror.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update writes the user only if the stored version still matches the one
// it was loaded with, then advances the aggregate's version.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query, args, err := r.builder.
		Update(tableUsers).
		Set(toUpdateRecord(user)).
		Where(
			goqu.C(colID).Eq(user.ID().String()),
			goqu.C(colVersion).Eq(user.Version()),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, user.ID())
		if err != nil {
			return err
		}
		if !exists {
			return domainerror.ErrUserNotFound
		}
		return domainerror.ErrUserConcurrentModification
	}

	user.AdvanceVersion(user.Version() + 1)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id types.ID) (*model.User, error) {
	return r.findOne(ctx, goqu.C(colID).Eq(id.String()))
}

func (r *userRepository) FindByDID(ctx context.Context, did string) (*model.User, error) {
	return r.findOne(ctx, goqu.C(colDID).Eq(did))
}

func (r *userRepository) Delete(ctx context.Context, id types.ID) error {
	query, args, err := r.builder.
		Delete(tableUsers).
		Where(goqu.C(colID).Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerror.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, where goqu.Expression) (*model.User, error) {
	query, args, err := r.builder.
		From(tableUsers).
		Select(userColumns...).
		Where(where).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var row userRow
	if err := r.pool.QueryRow(ctx, query, args...).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return toUserModel(row)
}

func (r *userRepository) exists(ctx context.Context, id types.ID) (bool, error) {
	query, args, err := r.builder.
		From(tableUsers).
		Select(goqu.L("1")).
		Where(goqu.C(colID).Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build exists: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return true, nil
}
