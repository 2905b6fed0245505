package fixture

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideAll  Side = "all"
)

func ParseSide(value string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(value))) {
	case SideHome:
		return SideHome, true
	case SideAway:
		return SideAway, true
	case SideAll, Side(""):
		return SideAll, true
	default:
		return "", false
	}
}

// ErrInvalidDateFilter rejects a match_date literal that fits none of
// the accepted granularities.
var ErrInvalidDateFilter = errors.New("invalid match_date format")

// DateGranularity is inferred from the shape of the literal the caller
// supplied, never from a separate parameter.
type DateGranularity string

const (
	GranularityInstant DateGranularity = "instant"
	GranularityDay     DateGranularity = "day"
	GranularityMonth   DateGranularity = "month"
	GranularityYear    DateGranularity = "year"
)

var (
	instantPattern = regexp.MustCompile(`^\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d$`)
	dayPattern     = regexp.MustCompile(`^\d{4}-[01]\d-[0-3]\d$`)
	monthPattern   = regexp.MustCompile(`^\d{4}-[01]\d$`)
	yearPattern    = regexp.MustCompile(`^\d{4}$`)
)

// DateFilter is a resolved match_date constraint: either an exact
// instant or a half-open [Start, End) range covering a day, month or
// year.
type DateFilter struct {
	Granularity DateGranularity
	Instant     time.Time
	Start       time.Time
	End         time.Time
}

// ParseDateFilter resolves a match_date literal into a DateFilter.
// Accepted shapes: 2019-05-04T12:00, 2019-05-04, 2019-05, 2019.
func ParseDateFilter(raw string) (DateFilter, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case instantPattern.MatchString(raw):
		at, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			return DateFilter{}, ErrInvalidDateFilter
		}
		return DateFilter{Granularity: GranularityInstant, Instant: at.UTC()}, nil

	case dayPattern.MatchString(raw):
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return DateFilter{}, ErrInvalidDateFilter
		}
		start := day.UTC()
		return DateFilter{Granularity: GranularityDay, Start: start, End: start.AddDate(0, 0, 1)}, nil

	case monthPattern.MatchString(raw):
		month, err := time.Parse("2006-01", raw)
		if err != nil {
			return DateFilter{}, ErrInvalidDateFilter
		}
		start := month.UTC()
		return DateFilter{Granularity: GranularityMonth, Start: start, End: start.AddDate(0, 1, 0)}, nil

	case yearPattern.MatchString(raw):
		year, err := time.Parse("2006", raw)
		if err != nil {
			return DateFilter{}, ErrInvalidDateFilter
		}
		start := year.UTC()
		return DateFilter{Granularity: GranularityYear, Start: start, End: start.AddDate(1, 0, 0)}, nil
	}

	return DateFilter{}, ErrInvalidDateFilter
}

// Matches reports whether a match date satisfies the filter. The
// postgres repository expresses the same predicate in SQL.
func (f DateFilter) Matches(matchDate time.Time) bool {
	matchDate = matchDate.UTC()
	if f.Granularity == GranularityInstant {
		return matchDate.Equal(f.Instant)
	}
	return !matchDate.Before(f.Start) && matchDate.Before(f.End)
}

// Filter is the AND-composition of the independent fixture search
// predicates. Zero values impose no constraint.
type Filter struct {
	TeamName string
	TeamID   int64
	Side     Side
	Status   Status
	Date     *DateFilter
}

// MatchesTeamName applies the case-insensitive name-prefix predicate
// against a fixture's team names for the configured side.
func (f Filter) MatchesTeamName(item Fixture) bool {
	if f.TeamName == "" {
		return true
	}

	prefix := strings.ToLower(f.TeamName)
	home := strings.HasPrefix(strings.ToLower(item.HomeTeam), prefix)
	away := strings.HasPrefix(strings.ToLower(item.AwayTeam), prefix)

	switch f.Side {
	case SideHome:
		return home
	case SideAway:
		return away
	default:
		return home || away
	}
}

// MatchesTeamID applies the side predicate against team IDs, used by
// the per-team fixtures listing.
func (f Filter) MatchesTeamID(item Fixture) bool {
	if f.TeamID == 0 {
		return true
	}

	switch f.Side {
	case SideHome:
		return item.HomeTeamID == f.TeamID
	case SideAway:
		return item.AwayTeamID == f.TeamID
	default:
		return item.HomeTeamID == f.TeamID || item.AwayTeamID == f.TeamID
	}
}

// Matches reports whether a fixture satisfies every present predicate.
func (f Filter) Matches(item Fixture) bool {
	if !f.MatchesTeamName(item) || !f.MatchesTeamID(item) {
		return false
	}
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	if f.Date != nil && !f.Date.Matches(item.MatchDate) {
		return false
	}
	return true
}
