package fixture

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ErrPairExists is reported by repositories when the unique
// (home_team_id, away_team_id) constraint rejects a write.
var ErrPairExists = errors.New("fixture already exists for this home/away pair")

// ErrTeamMissing is reported by repositories when a referenced team
// does not exist.
var ErrTeamMissing = errors.New("referenced team does not exist")

// Fixture is one scheduled match between two teams. Goals stay nil
// until the match is confirmed finished.
type Fixture struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	HomeTeam   string
	AwayTeam   string
	MatchDate  time.Time
	HomeGoals  *int
	AwayGoals  *int
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ParseStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}
