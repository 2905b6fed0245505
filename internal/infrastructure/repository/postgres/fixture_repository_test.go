package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/leaguehq/league-api/internal/domain/fixture"
	qb "github.com/leaguehq/league-api/internal/platform/querybuilder"
)

func renderConditions(t *testing.T, conditions []qb.Condition) (string, []any) {
	t.Helper()
	query, args, err := qb.Select("COUNT(*)").From("fixtures f").
		Where(conditions...).
		ToSQL()
	if err != nil {
		t.Fatalf("render conditions: %v", err)
	}
	return query, args
}

func TestFilterConditionsTeamNameSides(t *testing.T) {
	cases := map[fixture.Side]string{
		fixture.SideHome: "h.name ILIKE $1",
		fixture.SideAway: "a.name ILIKE $1",
		fixture.SideAll:  "(h.name ILIKE $1 OR a.name ILIKE $2)",
	}

	for side, wantClause := range cases {
		query, args := renderConditions(t, filterConditions(fixture.Filter{TeamName: "Liv", Side: side}))
		if !strings.Contains(query, wantClause) {
			t.Fatalf("side %s: expected %q in %q", side, wantClause, query)
		}
		if got := args[0].(string); got != "Liv%" {
			t.Fatalf("unexpected pattern: %q", got)
		}
	}
}

func TestFilterConditionsDateRange(t *testing.T) {
	date, err := fixture.ParseDateFilter("2026-03")
	if err != nil {
		t.Fatalf("parse date filter: %v", err)
	}

	query, args := renderConditions(t, filterConditions(fixture.Filter{Date: &date}))
	if !strings.Contains(query, "f.match_date >= $1 AND f.match_date < $2") {
		t.Fatalf("expected a half-open range clause, got %q", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	start := args[0].(time.Time)
	end := args[1].(time.Time)
	if !end.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("expected a one month window, got %v .. %v", start, end)
	}
}

func TestFilterConditionsInstant(t *testing.T) {
	date, err := fixture.ParseDateFilter("2026-03-20T17:30")
	if err != nil {
		t.Fatalf("parse date filter: %v", err)
	}

	query, _ := renderConditions(t, filterConditions(fixture.Filter{Date: &date}))
	if !strings.Contains(query, "f.match_date = $1") {
		t.Fatalf("expected an exact match clause, got %q", query)
	}
}

func TestFilterConditionsCombined(t *testing.T) {
	date, err := fixture.ParseDateFilter("2026")
	if err != nil {
		t.Fatalf("parse date filter: %v", err)
	}

	filter := fixture.Filter{
		TeamName: "Ars",
		Side:     fixture.SideHome,
		Status:   fixture.StatusPending,
		Date:     &date,
	}
	query, args := renderConditions(t, filterConditions(filter))

	for _, clause := range []string{"h.name ILIKE $1", "f.status = $2", "f.match_date >= $3 AND f.match_date < $4"} {
		if !strings.Contains(query, clause) {
			t.Fatalf("expected %q in %q", clause, query)
		}
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
}

func TestLikePrefixPatternEscapesMetacharacters(t *testing.T) {
	got := likePrefixPattern(`50%_club\`)
	want := `50\%\_club\\%`
	if got != want {
		t.Fatalf("unexpected pattern: got %q want %q", got, want)
	}
}
