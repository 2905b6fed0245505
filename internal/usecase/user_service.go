package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/leaguehq/league-api/internal/domain/user"
	"github.com/leaguehq/league-api/internal/platform/cache"
)

// UserService serves account listings and profile reads/updates.
// Credential and token concerns live in AuthService.
type UserService struct {
	userRepo  user.Repository
	listCache *cache.Store
}

func NewUserService(userRepo user.Repository, listCache *cache.Store) *UserService {
	return &UserService{
		userRepo:  userRepo,
		listCache: listCache,
	}
}

// List returns one page of users. The default first page is memoized
// until a user write drops it.
func (s *UserService) List(ctx context.Context, page PageRequest) ([]user.User, PageMeta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.List")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		limit, offset := page.LimitOffset()
		items, total, err := s.userRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return listPage[user.User]{Items: items, Meta: NewPageMeta(page, total)}, nil
	}

	var snapshot any
	var err error
	if page.IsFirstDefaultPage() {
		snapshot, err = s.listCache.GetOrLoad(ctx, usersFirstPageKey, load)
	} else {
		snapshot, err = load(ctx)
	}
	if err != nil {
		return nil, PageMeta{}, err
	}

	result := snapshot.(listPage[user.User])
	return result.Items, result.Meta, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetByID")
	defer span.End()

	item, exists, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, Failf(ErrNotFound, "User not found")
	}
	return item, nil
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
}

// UpdateProfile changes the caller's own name fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateProfile")
	defer span.End()

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	fields := FieldErrors{}
	if in.FirstName == "" {
		fields.Add("first_name", "can't be blank")
	}
	if in.LastName == "" {
		fields.Add("last_name", "can't be blank")
	}
	if !fields.Empty() {
		return user.User{}, FailFields("Profile update failed", fields)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, Failf(ErrNotFound, "User not found")
	}

	item.FirstName = in.FirstName
	item.LastName = in.LastName
	if err := s.userRepo.Update(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	s.listCache.Delete(ctx, usersFirstPageKey)

	// The repo stamps updated_at; reload so the caller sees it.
	refreshed, _, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("reload user: %w", err)
	}
	return refreshed, nil
}
