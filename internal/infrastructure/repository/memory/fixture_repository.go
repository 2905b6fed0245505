package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/leaguehq/league-api/internal/domain/fixture"
)

// FixtureRepository keeps fixtures in memory and resolves team names
// through the team repository, mirroring the join the postgres twin
// performs.
type FixtureRepository struct {
	mu     sync.RWMutex
	items  map[int64]fixture.Fixture
	nextID int64
	teams  *TeamRepository
}

func NewFixtureRepository(teams *TeamRepository) *FixtureRepository {
	r := &FixtureRepository{
		items:  make(map[int64]fixture.Fixture),
		nextID: 1,
		teams:  teams,
	}
	teams.referenced = r.referencesTeam

	return r
}

func (r *FixtureRepository) referencesTeam(_ context.Context, teamID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.HomeTeamID == teamID || item.AwayTeamID == teamID {
			return true
		}
	}

	return false
}

func (r *FixtureRepository) Create(ctx context.Context, item *fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.HomeTeamID == item.HomeTeamID && existing.AwayTeamID == item.AwayTeamID {
			return fixture.ErrPairExists
		}
	}
	if !r.teamExists(ctx, item.HomeTeamID) || !r.teamExists(ctx, item.AwayTeamID) {
		return fixture.ErrTeamMissing
	}

	now := time.Now().UTC()
	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item
	r.resolveNames(ctx, item)

	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	r.resolveNames(ctx, &item)

	return item, true, nil
}

func (r *FixtureRepository) Search(ctx context.Context, filter fixture.Filter, limit, offset int) ([]fixture.Fixture, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]fixture.Fixture, 0, len(r.items))
	for _, item := range r.items {
		r.resolveNames(ctx, &item)
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].MatchDate.Equal(matched[j].MatchDate) {
			return matched[i].MatchDate.Before(matched[j].MatchDate)
		}
		return matched[i].ID < matched[j].ID
	})

	return window(matched, limit, offset), len(matched), nil
}

func (r *FixtureRepository) ExistsPair(_ context.Context, homeTeamID, awayTeamID, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == excludeID {
			continue
		}
		if item.HomeTeamID == homeTeamID && item.AwayTeamID == awayTeamID {
			return true, nil
		}
	}

	return false, nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return nil
	}

	for id, existing := range r.items {
		if id != item.ID && existing.HomeTeamID == item.HomeTeamID && existing.AwayTeamID == item.AwayTeamID {
			return fixture.ErrPairExists
		}
	}
	if !r.teamExists(ctx, item.HomeTeamID) || !r.teamExists(ctx, item.AwayTeamID) {
		return fixture.ErrTeamMissing
	}

	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = item

	return nil
}

func (r *FixtureRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}

func (r *FixtureRepository) teamExists(ctx context.Context, id int64) bool {
	if r.teams == nil {
		return true
	}
	_, ok, _ := r.teams.GetByID(ctx, id)
	return ok
}

func (r *FixtureRepository) resolveNames(ctx context.Context, item *fixture.Fixture) {
	if r.teams == nil {
		return
	}
	if home, ok, _ := r.teams.GetByID(ctx, item.HomeTeamID); ok {
		item.HomeTeam = home.Name
	}
	if away, ok, _ := r.teams.GetByID(ctx, item.AwayTeamID); ok {
		item.AwayTeam = away.Name
	}
}
