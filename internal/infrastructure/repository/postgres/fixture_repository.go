package postgres

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/leaguehq/league-api/internal/domain/fixture"
	qb "github.com/leaguehq/league-api/internal/platform/querybuilder"
)

const fixtureColumns = "f.id, f.home_team_id, f.away_team_id, " +
	"h.name AS home_team_name, a.name AS away_team_name, " +
	"f.match_date, f.home_goals, f.away_goals, f.status, f.created_at, f.updated_at"

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) Create(ctx context.Context, item *fixture.Fixture) error {
	query, args, err := qb.InsertInto("fixtures").
		Columns("home_team_id", "away_team_id", "match_date", "home_goals", "away_goals", "status").
		Values(item.HomeTeamID, item.AwayTeamID, item.MatchDate, item.HomeGoals, item.AwayGoals, string(item.Status)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert fixture query")
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if isUniqueViolation(err, "fixtures_home_away_key") {
			return fixture.ErrPairExists
		}
		if isForeignKeyViolation(err) {
			return fixture.ErrTeamMissing
		}
		return errors.Wrap(err, "insert fixture")
	}

	r.fillNames(ctx, item)
	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := r.selectBuilder().
		Where(qb.Eq("f.id", id)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, errors.Wrap(err, "build get fixture query")
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, errors.Wrap(err, "get fixture")
	}

	return row.toDomain(), true, nil
}

func (r *FixtureRepository) Search(ctx context.Context, filter fixture.Filter, limit, offset int) ([]fixture.Fixture, int, error) {
	conditions := filterConditions(filter)

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("fixtures f").
		Join("teams h ON h.id = f.home_team_id").
		Join("teams a ON a.id = f.away_team_id").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return nil, 0, errors.Wrap(err, "build count fixtures query")
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "count fixtures")
	}

	query, args, err := r.selectBuilder().
		Where(conditions...).
		OrderBy("f.match_date", "f.id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, 0, errors.Wrap(err, "build search fixtures query")
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "search fixtures")
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, total, nil
}

func (r *FixtureRepository) ExistsPair(ctx context.Context, homeTeamID, awayTeamID, excludeID int64) (bool, error) {
	builder := qb.Select("COUNT(*)").From("fixtures").
		Where(
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
		)
	if excludeID != 0 {
		builder = builder.Where(qb.Ne("id", excludeID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build fixture pair query")
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "check fixture pair")
	}

	return count > 0, nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	query, args, err := qb.Update("fixtures").
		Set("home_team_id", item.HomeTeamID).
		Set("away_team_id", item.AwayTeamID).
		Set("match_date", item.MatchDate).
		Set("home_goals", item.HomeGoals).
		Set("away_goals", item.AwayGoals).
		Set("status", string(item.Status)).
		Set("updated_at", qb.Now()).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update fixture query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "fixtures_home_away_key") {
			return fixture.ErrPairExists
		}
		if isForeignKeyViolation(err) {
			return fixture.ErrTeamMissing
		}
		return errors.Wrap(err, "update fixture")
	}

	return nil
}

func (r *FixtureRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom("fixtures").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build delete fixture query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "delete fixture")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "delete fixture rows affected")
	}

	return affected > 0, nil
}

func (r *FixtureRepository) selectBuilder() *qb.SelectBuilder {
	return qb.Select(fixtureColumns).From("fixtures f").
		Join("teams h ON h.id = f.home_team_id").
		Join("teams a ON a.id = f.away_team_id")
}

// filterConditions translates the search filter into SQL predicates,
// the same semantics the memory repository applies in Go.
func filterConditions(filter fixture.Filter) []qb.Condition {
	var conditions []qb.Condition

	if filter.TeamName != "" {
		pattern := likePrefixPattern(filter.TeamName)
		switch filter.Side {
		case fixture.SideHome:
			conditions = append(conditions, qb.ILike("h.name", pattern))
		case fixture.SideAway:
			conditions = append(conditions, qb.ILike("a.name", pattern))
		default:
			conditions = append(conditions, qb.Expr("(h.name ILIKE ? OR a.name ILIKE ?)", pattern, pattern))
		}
	}

	if filter.TeamID != 0 {
		switch filter.Side {
		case fixture.SideHome:
			conditions = append(conditions, qb.Eq("f.home_team_id", filter.TeamID))
		case fixture.SideAway:
			conditions = append(conditions, qb.Eq("f.away_team_id", filter.TeamID))
		default:
			conditions = append(conditions, qb.Expr("(f.home_team_id = ? OR f.away_team_id = ?)", filter.TeamID, filter.TeamID))
		}
	}

	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("f.status", string(filter.Status)))
	}

	if filter.Date != nil {
		if filter.Date.Granularity == fixture.GranularityInstant {
			conditions = append(conditions, qb.Eq("f.match_date", filter.Date.Instant))
		} else {
			conditions = append(conditions, qb.Expr("f.match_date >= ? AND f.match_date < ?", filter.Date.Start, filter.Date.End))
		}
	}

	return conditions
}

// likePrefixPattern escapes LIKE metacharacters in caller input before
// appending the prefix wildcard.
func likePrefixPattern(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix) + "%"
}

// fillNames resolves the joined team names after an insert, which only
// returns the fixture row itself.
func (r *FixtureRepository) fillNames(ctx context.Context, item *fixture.Fixture) {
	loaded, ok, err := r.GetByID(ctx, item.ID)
	if err != nil || !ok {
		return
	}
	item.HomeTeam = loaded.HomeTeam
	item.AwayTeam = loaded.AwayTeam
}
