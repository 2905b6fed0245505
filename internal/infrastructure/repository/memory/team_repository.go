package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/leaguehq/league-api/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[int64]team.Team
	nextID int64

	// referenced emulates the fixtures -> teams foreign key; the
	// fixture repository registers it so Delete can refuse to orphan
	// fixtures the way the postgres constraint does.
	referenced func(ctx context.Context, teamID int64) bool
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		items:  make(map[int64]team.Team),
		nextID: 1,
	}
}

func (r *TeamRepository) Create(_ context.Context, item *team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(item.Name)
	for _, existing := range r.items {
		if strings.ToLower(existing.Name) == name {
			return team.ErrNameTaken
		}
	}

	now := time.Now().UTC()
	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item

	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TeamRepository) List(_ context.Context, limit, offset int) ([]team.Team, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return window(all, limit, offset), len(all), nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return nil
	}

	name := strings.ToLower(item.Name)
	for id, existing := range r.items {
		if id != item.ID && strings.ToLower(existing.Name) == name {
			return team.ErrNameTaken
		}
	}

	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = item

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) (bool, error) {
	// Checked outside the lock: the fixture repository takes its own
	// lock and calls back into this one for team lookups.
	if r.referenced != nil && r.referenced(ctx, id) {
		return false, team.ErrInUse
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}
