package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/leaguehq/league-api/internal/infrastructure/repository/memory"
)

func seedUsers(t *testing.T, repo *memory.UserRepository, count int) {
	t.Helper()
	ctx := context.Background()
	auth := NewAuthService(repo, nil, bcrypt.MinCost)
	for i := 0; i < count; i++ {
		in := RegisterInput{
			FirstName: "Test",
			LastName:  fmt.Sprintf("User%02d", i),
			Email:     fmt.Sprintf("user%02d@example.com", i),
			Password:  "password",
		}
		if _, _, err := auth.Register(ctx, in); err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
	}
}

func TestUserServiceList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seedUsers(t, repo, 3)
	service := NewUserService(repo, nil)

	items, meta, err := service.List(ctx, PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("unexpected list size: %d", len(items))
	}
	if meta.Total != 3 || meta.Page != 1 || meta.PerPage != DefaultPerPage || meta.PageCount != 1 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestUserServiceListEmptyMeta(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(memory.NewUserRepository(), nil)

	items, meta, err := service.List(ctx, PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected an empty page, got %d items", len(items))
	}
	// An empty collection still has exactly one page.
	if meta.PageCount != 1 || meta.Total != 0 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestUserServiceGetByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seedUsers(t, repo, 1)
	service := NewUserService(repo, nil)

	got, err := service.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "user00@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := service.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seedUsers(t, repo, 1)
	service := NewUserService(repo, nil)

	t.Run("updates name fields", func(t *testing.T) {
		got, err := service.UpdateProfile(ctx, 1, UpdateProfileInput{FirstName: "Harry", LastName: "Kane"})
		if err != nil {
			t.Fatalf("update profile: %v", err)
		}
		if got.FirstName != "Harry" || got.LastName != "Kane" {
			t.Fatalf("unexpected user: %+v", got)
		}
		stored, err := service.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("get updated user: %v", err)
		}
		if !got.UpdatedAt.Equal(stored.UpdatedAt) {
			t.Fatalf("update returned a stale updated_at: got %s, stored %s", got.UpdatedAt, stored.UpdatedAt)
		}
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, 1, UpdateProfileInput{FirstName: " ", LastName: ""})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, 999, UpdateProfileInput{FirstName: "A", LastName: "B"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
