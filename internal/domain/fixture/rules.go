package fixture

import (
	"errors"
	"time"
)

// ConfirmationWindow is how long after kickoff a match is still treated
// as plausibly in progress. Scores recorded inside the window are
// rejected, and their absence inside the window is not an error.
const ConfirmationWindow = 110 * time.Minute

var (
	ErrMissingScores       = errors.New("a finished fixture requires both home and away goals")
	ErrPrematureScores     = errors.New("goals cannot be recorded before the match is confirmed finished")
	ErrCompletedDateFrozen = errors.New("the match date of a completed fixture cannot change")
)

// ResolveStatus derives the lifecycle state of a fixture from its
// scheduled time and recorded goals, relative to now:
//
//   - kickoff in the future: goals must be absent, status stays pending
//   - kickoff passed but still inside ConfirmationWindow: goals must be
//     absent, status stays pending
//   - ConfirmationWindow elapsed: both goals required, status completed
func ResolveStatus(matchDate time.Time, homeGoals, awayGoals *int, now time.Time) (Status, error) {
	confirmedAt := matchDate.Add(ConfirmationWindow)
	if now.Before(confirmedAt) {
		if homeGoals != nil || awayGoals != nil {
			return "", ErrPrematureScores
		}
		return StatusPending, nil
	}

	if homeGoals == nil || awayGoals == nil {
		return "", ErrMissingScores
	}
	return StatusCompleted, nil
}

// ValidateUpdate guards the pending -> completed transition: once a
// fixture is completed its match date is frozen and it can never go
// back to pending.
func ValidateUpdate(current Fixture, newMatchDate time.Time) error {
	if current.Status == StatusCompleted && !newMatchDate.Equal(current.MatchDate) {
		return ErrCompletedDateFrozen
	}
	return nil
}
