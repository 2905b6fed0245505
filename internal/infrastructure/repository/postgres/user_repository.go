package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/leaguehq/league-api/internal/domain/user"
	qb "github.com/leaguehq/league-api/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, item *user.User) error {
	query, args, err := qb.InsertInto("users").
		Columns("first_name", "last_name", "email", "password_hash", "admin").
		Values(item.FirstName, item.LastName, item.Email, item.PasswordHash, item.Admin).
		Suffix("RETURNING id, created_at, updated_at").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert user query")
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return user.ErrEmailTaken
		}
		return errors.Wrap(err, "insert user")
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("email", email))
}

func (r *UserRepository) getOne(ctx context.Context, condition qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(condition).
		ToSQL()
	if err != nil {
		return user.User{}, false, errors.Wrap(err, "build get user query")
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, errors.Wrap(err, "get user")
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]user.User, int, error) {
	countQuery, countArgs, err := qb.Select("COUNT(*)").From("users").ToSQL()
	if err != nil {
		return nil, 0, errors.Wrap(err, "build count users query")
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	query, args, err := qb.Select("*").From("users").
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, 0, errors.Wrap(err, "build list users query")
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, total, nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	query, args, err := qb.Update("users").
		Set("first_name", item.FirstName).
		Set("last_name", item.LastName).
		Set("email", item.Email).
		Set("password_hash", item.PasswordHash).
		Set("updated_at", qb.Now()).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update user query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return user.ErrEmailTaken
		}
		return errors.Wrap(err, "update user")
	}

	return nil
}

func (r *UserRepository) SetValidToken(ctx context.Context, id int64, token *string) error {
	query, args, err := qb.Update("users").
		Set("valid_token", token).
		Set("updated_at", qb.Now()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build set valid token query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "set valid token")
	}

	return nil
}
