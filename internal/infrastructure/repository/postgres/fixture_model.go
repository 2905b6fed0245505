package postgres

import (
	"time"

	"github.com/leaguehq/league-api/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID         int64     `db:"id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	HomeTeam   string    `db:"home_team_name"`
	AwayTeam   string    `db:"away_team_name"`
	MatchDate  time.Time `db:"match_date"`
	HomeGoals  *int      `db:"home_goals"`
	AwayGoals  *int      `db:"away_goals"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:         m.ID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		MatchDate:  m.MatchDate,
		HomeGoals:  m.HomeGoals,
		AwayGoals:  m.AwayGoals,
		Status:     fixture.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
