package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/leaguehq/league-api/internal/domain/fixture"
	"github.com/leaguehq/league-api/internal/domain/team"
	"github.com/leaguehq/league-api/internal/domain/user"
)

const (
	SeedAdminEmail    = "admin@league.com"
	SeedAdminPassword = "password123"
)

var seedTeamNames = []string{
	"Arsenal",
	"Liverpool",
	"Chelsea",
	"Everton",
	"Leeds United",
	"Norwich City",
}

// Seed loads the demo dataset into an empty database: the admin
// account, a handful of teams, and fixtures on both sides of the
// status boundary. A database that already has users is left alone.
func Seed(ctx context.Context, users *UserRepository, teams *TeamRepository, fixtures *FixtureRepository, bcryptCost int) error {
	_, exists, err := users.GetByEmail(ctx, SeedAdminEmail)
	if err != nil {
		return errors.Wrap(err, "check seed admin")
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash seed admin password")
	}

	admin := user.User{
		FirstName:    "League",
		LastName:     "Admin",
		Email:        SeedAdminEmail,
		PasswordHash: string(hash),
		Admin:        true,
	}
	if err := users.Create(ctx, &admin); err != nil {
		return errors.Wrap(err, "seed admin user")
	}

	ids := make([]int64, 0, len(seedTeamNames))
	for _, name := range seedTeamNames {
		item := team.Team{Name: name}
		if err := teams.Create(ctx, &item); err != nil {
			return errors.Wrapf(err, "seed team %q", name)
		}
		ids = append(ids, item.ID)
	}

	now := time.Now().UTC()
	goals := func(n int) *int { return &n }

	seedFixtures := []fixture.Fixture{
		{
			HomeTeamID: ids[0], AwayTeamID: ids[1],
			MatchDate: now.AddDate(0, 0, -14),
			HomeGoals: goals(2), AwayGoals: goals(2),
			Status: fixture.StatusCompleted,
		},
		{
			HomeTeamID: ids[2], AwayTeamID: ids[3],
			MatchDate: now.AddDate(0, 0, -7),
			HomeGoals: goals(1), AwayGoals: goals(0),
			Status: fixture.StatusCompleted,
		},
		{
			HomeTeamID: ids[4], AwayTeamID: ids[5],
			MatchDate: now.AddDate(0, 0, 7),
			Status:    fixture.StatusPending,
		},
		{
			HomeTeamID: ids[1], AwayTeamID: ids[2],
			MatchDate: now.AddDate(0, 0, 14),
			Status:    fixture.StatusPending,
		},
	}
	for i := range seedFixtures {
		if err := fixtures.Create(ctx, &seedFixtures[i]); err != nil {
			return errors.Wrap(err, "seed fixture")
		}
	}

	return nil
}
