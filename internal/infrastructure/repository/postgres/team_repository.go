package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/leaguehq/league-api/internal/domain/team"
	qb "github.com/leaguehq/league-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item *team.Team) error {
	query, args, err := qb.InsertInto("teams").
		Columns("name").
		Values(item.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert team query")
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if isUniqueViolation(err, "teams_name_key") {
			return team.ErrNameTaken
		}
		return errors.Wrap(err, "insert team")
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, errors.Wrap(err, "build get team query")
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, errors.Wrap(err, "get team")
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context, limit, offset int) ([]team.Team, int, error) {
	countQuery, countArgs, err := qb.Select("COUNT(*)").From("teams").ToSQL()
	if err != nil {
		return nil, 0, errors.Wrap(err, "build count teams query")
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "count teams")
	}

	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, 0, errors.Wrap(err, "build list teams query")
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "list teams")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, total, nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("updated_at", qb.Now()).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update team query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "teams_name_key") {
			return team.ErrNameTaken
		}
		return errors.Wrap(err, "update team")
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build delete team query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, team.ErrInUse
		}
		return false, errors.Wrap(err, "delete team")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "delete team rows affected")
	}

	return affected > 0, nil
}
