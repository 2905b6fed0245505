package fixture

import (
	"errors"
	"testing"
	"time"
)

var ruleNow = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

func goals(n int) *int { return &n }

func TestResolveStatus(t *testing.T) {
	cases := map[string]struct {
		matchDate  time.Time
		homeGoals  *int
		awayGoals  *int
		wantStatus Status
		wantErr    error
	}{
		"future kickoff without goals": {
			matchDate:  ruleNow.Add(48 * time.Hour),
			wantStatus: StatusPending,
		},
		"future kickoff with goals": {
			matchDate: ruleNow.Add(48 * time.Hour),
			homeGoals: goals(1),
			awayGoals: goals(0),
			wantErr:   ErrPrematureScores,
		},
		"inside the window without goals": {
			matchDate:  ruleNow.Add(-time.Hour),
			wantStatus: StatusPending,
		},
		"inside the window with goals": {
			matchDate: ruleNow.Add(-time.Hour),
			homeGoals: goals(1),
			awayGoals: goals(1),
			wantErr:   ErrPrematureScores,
		},
		"inside the window with one goal set": {
			matchDate: ruleNow.Add(-109 * time.Minute),
			homeGoals: goals(1),
			wantErr:   ErrPrematureScores,
		},
		"window boundary with goals": {
			matchDate:  ruleNow.Add(-ConfirmationWindow),
			homeGoals:  goals(2),
			awayGoals:  goals(0),
			wantStatus: StatusCompleted,
		},
		"beyond the window with both goals": {
			matchDate:  ruleNow.Add(-3 * time.Hour),
			homeGoals:  goals(0),
			awayGoals:  goals(0),
			wantStatus: StatusCompleted,
		},
		"beyond the window without goals": {
			matchDate: ruleNow.Add(-3 * time.Hour),
			wantErr:   ErrMissingScores,
		},
		"beyond the window with only home goals": {
			matchDate: ruleNow.Add(-3 * time.Hour),
			homeGoals: goals(2),
			wantErr:   ErrMissingScores,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, err := ResolveStatus(tc.matchDate, tc.homeGoals, tc.awayGoals, ruleNow)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve status: %v", err)
			}
			if status != tc.wantStatus {
				t.Fatalf("unexpected status: got=%s want=%s", status, tc.wantStatus)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	matchDate := ruleNow.Add(-3 * time.Hour)

	t.Run("completed date is frozen", func(t *testing.T) {
		current := Fixture{Status: StatusCompleted, MatchDate: matchDate}
		if err := ValidateUpdate(current, matchDate.Add(time.Hour)); !errors.Is(err, ErrCompletedDateFrozen) {
			t.Fatalf("expected ErrCompletedDateFrozen, got %v", err)
		}
	})

	t.Run("completed date unchanged is fine", func(t *testing.T) {
		current := Fixture{Status: StatusCompleted, MatchDate: matchDate}
		if err := ValidateUpdate(current, matchDate); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("pending date can move", func(t *testing.T) {
		current := Fixture{Status: StatusPending, MatchDate: matchDate}
		if err := ValidateUpdate(current, matchDate.Add(48*time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
