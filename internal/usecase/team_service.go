package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leaguehq/league-api/internal/domain/team"
	"github.com/leaguehq/league-api/internal/platform/cache"
)

// TeamService owns team CRUD and the memoized first page of the team
// listing. Every write drops the snapshot so the next read rebuilds it.
type TeamService struct {
	teamRepo  team.Repository
	listCache *cache.Store
}

func NewTeamService(teamRepo team.Repository, listCache *cache.Store) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		listCache: listCache,
	}
}

func (s *TeamService) Create(ctx context.Context, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	item := team.Team{Name: strings.TrimSpace(name)}
	if err := item.Validate(); err != nil {
		fields := FieldErrors{}
		fields.Add("name", err.Error())
		return team.Team{}, FailFields("Team could not be created", fields)
	}

	if err := s.teamRepo.Create(ctx, &item); err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			fields := FieldErrors{}
			fields.Add("name", "has already been taken")
			return team.Team{}, FailFields("Team could not be created", fields)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.listCache.Delete(ctx, teamsFirstPageKey)
	return item, nil
}

// List returns one page of teams. The default first page is memoized
// until a team write drops it.
func (s *TeamService) List(ctx context.Context, page PageRequest) ([]team.Team, PageMeta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		limit, offset := page.LimitOffset()
		items, total, err := s.teamRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return listPage[team.Team]{Items: items, Meta: NewPageMeta(page, total)}, nil
	}

	var snapshot any
	var err error
	if page.IsFirstDefaultPage() {
		snapshot, err = s.listCache.GetOrLoad(ctx, teamsFirstPageKey, load)
	} else {
		snapshot, err = load(ctx)
	}
	if err != nil {
		return nil, PageMeta{}, err
	}

	result := snapshot.(listPage[team.Team])
	return result.Items, result.Meta, nil
}

func (s *TeamService) GetByID(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	item, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, Failf(ErrNotFound, "Team not found")
	}
	return item, nil
}

// Rename changes a team's name, subject to the same validation and
// uniqueness rules as creation.
func (s *TeamService) Rename(ctx context.Context, id int64, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Rename")
	defer span.End()

	item, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, Failf(ErrNotFound, "Team not found")
	}

	item.Name = strings.TrimSpace(name)
	if err := item.Validate(); err != nil {
		fields := FieldErrors{}
		fields.Add("name", err.Error())
		return team.Team{}, FailFields("Team could not be updated", fields)
	}

	if err := s.teamRepo.Update(ctx, item); err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			fields := FieldErrors{}
			fields.Add("name", "has already been taken")
			return team.Team{}, FailFields("Team could not be updated", fields)
		}
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.listCache.Delete(ctx, teamsFirstPageKey)

	// The repo stamps updated_at; reload so the caller sees it.
	refreshed, _, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("reload team: %w", err)
	}
	return refreshed, nil
}

func (s *TeamService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	deleted, err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, team.ErrInUse) {
			fields := FieldErrors{}
			fields.Add("base", "cannot be deleted while fixtures reference this team")
			return FailFields("Team could not be deleted", fields)
		}
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return Failf(ErrNotFound, "Team not found")
	}

	s.listCache.Delete(ctx, teamsFirstPageKey)
	return nil
}
