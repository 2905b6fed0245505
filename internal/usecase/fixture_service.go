package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leaguehq/league-api/internal/domain/fixture"
	"github.com/leaguehq/league-api/internal/domain/team"
)

// FixtureService owns fixture CRUD, the status lifecycle and search.
type FixtureService struct {
	fixtureRepo fixture.Repository
	teamRepo    team.Repository
	now         func() time.Time
}

func NewFixtureService(fixtureRepo fixture.Repository, teamRepo team.Repository) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		teamRepo:    teamRepo,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock, for tests that pin "now".
func (s *FixtureService) WithClock(now func() time.Time) *FixtureService {
	if now != nil {
		s.now = now
	}
	return s
}

type CreateFixtureInput struct {
	HomeTeamID int64
	AwayTeamID int64
	MatchDate  time.Time
	HomeGoals  *int
	AwayGoals  *int
}

func (s *FixtureService) Create(ctx context.Context, in CreateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Create")
	defer span.End()

	fields := FieldErrors{}
	if in.HomeTeamID == 0 {
		fields.Add("home_team_id", "can't be blank")
	}
	if in.AwayTeamID == 0 {
		fields.Add("away_team_id", "can't be blank")
	}
	if in.MatchDate.IsZero() {
		fields.Add("match_date", "can't be blank")
	}
	if in.HomeTeamID != 0 && in.HomeTeamID == in.AwayTeamID {
		fields.Add("away_team_id", "must differ from home team")
	}
	if !fields.Empty() {
		return fixture.Fixture{}, FailFields("Fixture could not be created", fields)
	}

	if err := s.checkTeams(ctx, in.HomeTeamID, in.AwayTeamID, fields); err != nil {
		return fixture.Fixture{}, err
	}
	if !fields.Empty() {
		return fixture.Fixture{}, FailFields("Fixture could not be created", fields)
	}

	status, err := fixture.ResolveStatus(in.MatchDate, in.HomeGoals, in.AwayGoals, s.now())
	if err != nil {
		return fixture.Fixture{}, s.statusFail("Fixture could not be created", err)
	}

	taken, err := s.fixtureRepo.ExistsPair(ctx, in.HomeTeamID, in.AwayTeamID, 0)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("check fixture pair: %w", err)
	}
	if taken {
		return fixture.Fixture{}, Failf(ErrAlreadyExists, "Fixture already exists")
	}

	item := fixture.Fixture{
		HomeTeamID: in.HomeTeamID,
		AwayTeamID: in.AwayTeamID,
		MatchDate:  in.MatchDate.UTC(),
		HomeGoals:  in.HomeGoals,
		AwayGoals:  in.AwayGoals,
		Status:     status,
	}
	if err := s.fixtureRepo.Create(ctx, &item); err != nil {
		return fixture.Fixture{}, s.writeFail("Fixture could not be created", err)
	}
	return item, nil
}

func (s *FixtureService) GetByID(ctx context.Context, id int64) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetByID")
	defer span.End()

	item, exists, err := s.fixtureRepo.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, Failf(ErrNotFound, "Fixture not found")
	}
	return item, nil
}

// UpdateFixtureInput patches a fixture. Nil fields stay unchanged;
// goals can only ever be supplied, never cleared, because a completed
// fixture never reverts to pending.
type UpdateFixtureInput struct {
	HomeTeamID *int64
	AwayTeamID *int64
	MatchDate  *time.Time
	HomeGoals  *int
	AwayGoals  *int
}

func (s *FixtureService) Update(ctx context.Context, id int64, in UpdateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Update")
	defer span.End()

	item, exists, err := s.fixtureRepo.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, Failf(ErrNotFound, "Fixture not found")
	}

	next := item
	if in.HomeTeamID != nil {
		next.HomeTeamID = *in.HomeTeamID
	}
	if in.AwayTeamID != nil {
		next.AwayTeamID = *in.AwayTeamID
	}
	if in.MatchDate != nil {
		next.MatchDate = in.MatchDate.UTC()
	}
	if in.HomeGoals != nil {
		next.HomeGoals = in.HomeGoals
	}
	if in.AwayGoals != nil {
		next.AwayGoals = in.AwayGoals
	}

	fields := FieldErrors{}
	if next.HomeTeamID == next.AwayTeamID {
		fields.Add("away_team_id", "must differ from home team")
		return fixture.Fixture{}, FailFields("Fixture could not be updated", fields)
	}
	if next.HomeTeamID != item.HomeTeamID || next.AwayTeamID != item.AwayTeamID {
		if err := s.checkTeams(ctx, next.HomeTeamID, next.AwayTeamID, fields); err != nil {
			return fixture.Fixture{}, err
		}
		if !fields.Empty() {
			return fixture.Fixture{}, FailFields("Fixture could not be updated", fields)
		}

		taken, err := s.fixtureRepo.ExistsPair(ctx, next.HomeTeamID, next.AwayTeamID, item.ID)
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("check fixture pair: %w", err)
		}
		if taken {
			return fixture.Fixture{}, Failf(ErrAlreadyExists, "Fixture already exists")
		}
	}

	if err := fixture.ValidateUpdate(item, next.MatchDate); err != nil {
		return fixture.Fixture{}, s.statusFail("Fixture could not be updated", err)
	}

	status, err := fixture.ResolveStatus(next.MatchDate, next.HomeGoals, next.AwayGoals, s.now())
	if err != nil {
		return fixture.Fixture{}, s.statusFail("Fixture could not be updated", err)
	}
	next.Status = status

	if err := s.fixtureRepo.Update(ctx, next); err != nil {
		return fixture.Fixture{}, s.writeFail("Fixture could not be updated", err)
	}

	// Repos stamp updated_at and persist team IDs rather than joined
	// names; reload so the caller sees what was written.
	refreshed, _, err := s.fixtureRepo.GetByID(ctx, next.ID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("reload fixture: %w", err)
	}
	return refreshed, nil
}

func (s *FixtureService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Delete")
	defer span.End()

	deleted, err := s.fixtureRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete fixture: %w", err)
	}
	if !deleted {
		return Failf(ErrNotFound, "Fixture not found")
	}
	return nil
}

// SearchFixturesInput carries the raw query parameters; parsing
// failures surface as field-level validation errors.
type SearchFixturesInput struct {
	TeamName  string
	Side      string
	Status    string
	MatchDate string
	Page      PageRequest
}

func (s *FixtureService) Search(ctx context.Context, in SearchFixturesInput) ([]fixture.Fixture, PageMeta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Search")
	defer span.End()

	filter, fields := buildFilter(in.TeamName, in.Side, in.Status, in.MatchDate)
	if !fields.Empty() {
		return nil, PageMeta{}, FailFields("Fixture search failed", fields)
	}

	limit, offset := in.Page.LimitOffset()
	items, total, err := s.fixtureRepo.Search(ctx, filter, limit, offset)
	if err != nil {
		return nil, PageMeta{}, fmt.Errorf("search fixtures: %w", err)
	}
	return items, NewPageMeta(in.Page, total), nil
}

// ListByTeam returns a team's fixtures filtered by side.
func (s *FixtureService) ListByTeam(ctx context.Context, teamID int64, side string, page PageRequest) ([]fixture.Fixture, PageMeta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByTeam")
	defer span.End()

	parsedSide, ok := fixture.ParseSide(side)
	if !ok {
		fields := FieldErrors{}
		fields.Add("side", "must be one of home, away, all")
		return nil, PageMeta{}, FailFields("Fixture search failed", fields)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, PageMeta{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return nil, PageMeta{}, Failf(ErrNotFound, "Team not found")
	}

	limit, offset := page.LimitOffset()
	filter := fixture.Filter{TeamID: teamID, Side: parsedSide}
	items, total, err := s.fixtureRepo.Search(ctx, filter, limit, offset)
	if err != nil {
		return nil, PageMeta{}, fmt.Errorf("search fixtures: %w", err)
	}
	return items, NewPageMeta(page, total), nil
}

func buildFilter(teamName, side, status, matchDate string) (fixture.Filter, FieldErrors) {
	fields := FieldErrors{}
	filter := fixture.Filter{TeamName: teamName}

	parsedSide, ok := fixture.ParseSide(side)
	if !ok {
		fields.Add("side", "must be one of home, away, all")
	}
	filter.Side = parsedSide

	if status != "" {
		parsedStatus, ok := fixture.ParseStatus(status)
		if !ok {
			fields.Add("status", "must be one of pending, completed")
		}
		filter.Status = parsedStatus
	}

	if matchDate != "" {
		date, err := fixture.ParseDateFilter(matchDate)
		if err != nil {
			fields.Add("match_date", "must look like 2019-05-04T12:00, 2019-05-04, 2019-05 or 2019")
		} else {
			filter.Date = &date
		}
	}

	return filter, fields
}

func (s *FixtureService) checkTeams(ctx context.Context, homeTeamID, awayTeamID int64, fields FieldErrors) error {
	if _, exists, err := s.teamRepo.GetByID(ctx, homeTeamID); err != nil {
		return fmt.Errorf("get home team: %w", err)
	} else if !exists {
		fields.Add("home_team_id", "must reference an existing team")
	}
	if _, exists, err := s.teamRepo.GetByID(ctx, awayTeamID); err != nil {
		return fmt.Errorf("get away team: %w", err)
	} else if !exists {
		fields.Add("away_team_id", "must reference an existing team")
	}
	return nil
}

func (s *FixtureService) statusFail(message string, err error) error {
	fields := FieldErrors{}
	switch {
	case errors.Is(err, fixture.ErrMissingScores):
		fields.Add("goals", "both home and away goals are required once the match has finished")
	case errors.Is(err, fixture.ErrPrematureScores):
		fields.Add("goals", "cannot be recorded before the match is confirmed finished")
	case errors.Is(err, fixture.ErrCompletedDateFrozen):
		fields.Add("match_date", "cannot change once the fixture is completed")
	default:
		return fmt.Errorf("resolve fixture status: %w", err)
	}
	return FailFields(message, fields)
}

// writeFail translates constraint violations the repository surfaces
// on write, covering races the pre-checks cannot.
func (s *FixtureService) writeFail(message string, err error) error {
	switch {
	case errors.Is(err, fixture.ErrPairExists):
		return Failf(ErrAlreadyExists, "Fixture already exists")
	case errors.Is(err, fixture.ErrTeamMissing):
		fields := FieldErrors{}
		fields.Add("home_team_id", "must reference an existing team")
		return FailFields(message, fields)
	default:
		return fmt.Errorf("write fixture: %w", err)
	}
}
