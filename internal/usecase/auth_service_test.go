package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/leaguehq/league-api/internal/infrastructure/repository/memory"
	"github.com/leaguehq/league-api/internal/platform/token"
)

func newAuthService(t *testing.T) (*AuthService, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	return NewAuthService(repo, nil, bcrypt.MinCost), repo
}

func validRegistration() RegisterInput {
	return RegisterInput{
		FirstName: "Dele",
		LastName:  "Alli",
		Email:     "dele@example.com",
		Password:  "football",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a stored session token", func(t *testing.T) {
		service, _ := newAuthService(t)

		created, raw, err := service.Register(ctx, validRegistration())
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if created.ID == 0 {
			t.Fatalf("expected an assigned user id")
		}
		if !created.HasValidToken(raw) {
			t.Fatalf("issued token is not the stored valid token")
		}

		claims, err := token.Verify(raw)
		if err != nil {
			t.Fatalf("verify issued token: %v", err)
		}
		if claims.UserID != created.ID {
			t.Fatalf("unexpected claims user id: got=%d want=%d", claims.UserID, created.ID)
		}
	})

	t.Run("rejects blank and malformed fields", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, _, err := service.Register(ctx, RegisterInput{Email: "not-an-email", Password: "short"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		var fail *Fail
		if !errors.As(err, &fail) {
			t.Fatalf("expected a Fail, got %T", err)
		}
		for _, field := range []string{"first_name", "last_name", "email", "password"} {
			if len(fail.Fields[field]) == 0 {
				t.Fatalf("expected a message for field %q, got %v", field, fail.Fields)
			}
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		service, _ := newAuthService(t)

		if _, _, err := service.Register(ctx, validRegistration()); err != nil {
			t.Fatalf("first register: %v", err)
		}

		_, _, err := service.Register(ctx, validRegistration())
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		var fail *Fail
		if !errors.As(err, &fail) || len(fail.Fields["email"]) == 0 {
			t.Fatalf("expected an email field error, got %v", err)
		}
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the valid token", func(t *testing.T) {
		service, _ := newAuthService(t)

		created, firstToken, err := service.Register(ctx, validRegistration())
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		_, secondToken, err := service.Login(ctx, created.Email, "football")
		if err != nil {
			t.Fatalf("login: %v", err)
		}

		if _, err := service.AuthenticateToken(ctx, secondToken); err != nil {
			t.Fatalf("authenticate fresh token: %v", err)
		}
		if _, err := service.AuthenticateToken(ctx, firstToken); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected stale token to be rejected, got %v", err)
		}
	})

	t.Run("rejects bad credentials without leaking which part failed", func(t *testing.T) {
		service, _ := newAuthService(t)

		if _, _, err := service.Register(ctx, validRegistration()); err != nil {
			t.Fatalf("register: %v", err)
		}

		for _, tc := range []struct{ email, password string }{
			{"dele@example.com", "wrong-password"},
			{"nobody@example.com", "football"},
			{"", ""},
		} {
			_, _, err := service.Login(ctx, tc.email, tc.password)
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("login %q/%q: expected ErrUnauthorized, got %v", tc.email, tc.password, err)
			}
			if err.Error() != "Invalid email or password" {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		}
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	created, raw, err := service.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.Logout(ctx, created.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := service.AuthenticateToken(ctx, raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected token to be invalid after logout, got %v", err)
	}
}

func TestAuthServiceUpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("requires the current password", func(t *testing.T) {
		service, _ := newAuthService(t)

		created, _, err := service.Register(ctx, validRegistration())
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		err = service.UpdatePassword(ctx, created.ID, "wrong", "new-password")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("session survives the change and the new password works", func(t *testing.T) {
		service, _ := newAuthService(t)

		created, raw, err := service.Register(ctx, validRegistration())
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		if err := service.UpdatePassword(ctx, created.ID, "football", "handball2"); err != nil {
			t.Fatalf("update password: %v", err)
		}
		if _, err := service.AuthenticateToken(ctx, raw); err != nil {
			t.Fatalf("token should survive a password change: %v", err)
		}

		if _, _, err := service.Login(ctx, created.Email, "football"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("old password should stop working, got %v", err)
		}
		if _, _, err := service.Login(ctx, created.Email, "handball2"); err != nil {
			t.Fatalf("login with new password: %v", err)
		}
	})
}

func TestAuthServiceAuthenticateToken(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	created, raw, err := service.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("accepts the stored token", func(t *testing.T) {
		got, err := service.AuthenticateToken(ctx, raw)
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if got.ID != created.ID {
			t.Fatalf("unexpected user: got=%d want=%d", got.ID, created.ID)
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		forged, err := token.Issue(token.Claims{UserID: created.ID, Context: "admin"})
		if err != nil {
			t.Fatalf("issue forged token: %v", err)
		}
		unknown, err := token.Issue(token.Claims{UserID: 999})
		if err != nil {
			t.Fatalf("issue unknown-user token: %v", err)
		}

		for name, tok := range map[string]string{
			"garbage":       "not-a-token",
			"empty":         "",
			"wrong context": forged,
			"unknown user":  unknown,
		} {
			if _, err := service.AuthenticateToken(ctx, tok); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
			}
		}
	})
}
