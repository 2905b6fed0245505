package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/leaguehq/league-api/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	items  map[int64]user.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		items:  make(map[int64]user.User),
		nextID: 1,
	}
}

func (r *UserRepository) Create(_ context.Context, item *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(item.Email)
	for _, existing := range r.items {
		if strings.ToLower(existing.Email) == email {
			return user.ErrEmailTaken
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

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, item := range r.items {
		if strings.ToLower(item.Email) == email {
			return item, true, nil
		}
	}

	return user.User{}, false, nil
}

func (r *UserRepository) List(_ context.Context, limit, offset int) ([]user.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]user.User, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return window(all, limit, offset), len(all), nil
}

func (r *UserRepository) Update(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return nil
	}

	email := strings.ToLower(item.Email)
	for id, existing := range r.items {
		if id != item.ID && strings.ToLower(existing.Email) == email {
			return user.ErrEmailTaken
		}
	}

	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = item

	return nil
}

func (r *UserRepository) SetValidToken(_ context.Context, id int64, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil
	}

	if token == nil {
		item.ValidToken = nil
	} else {
		value := *token
		item.ValidToken = &value
	}
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item

	return nil
}

// window applies limit/offset slicing shared by the list methods.
func window[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]T, end-offset)
	copy(out, all[offset:end])
	return out
}
