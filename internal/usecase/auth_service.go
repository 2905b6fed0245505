package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/leaguehq/league-api/internal/domain/user"
	"github.com/leaguehq/league-api/internal/platform/cache"
	"github.com/leaguehq/league-api/internal/platform/token"
)

const PasswordMinLength = 6

// AuthService owns credentials and the single-active-session token
// lifecycle. Every successful register or login rotates the stored
// token, invalidating any previously issued one.
type AuthService struct {
	userRepo   user.Repository
	listCache  *cache.Store
	bcryptCost int
}

func NewAuthService(userRepo user.Repository, listCache *cache.Store, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		listCache:  listCache,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (in *RegisterInput) validate() FieldErrors {
	fields := FieldErrors{}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.FirstName == "" {
		fields.Add("first_name", "can't be blank")
	}
	if in.LastName == "" {
		fields.Add("last_name", "can't be blank")
	}
	if in.Email == "" {
		fields.Add("email", "can't be blank")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields.Add("email", "is invalid")
	}
	if len(in.Password) < PasswordMinLength {
		fields.Add("password", fmt.Sprintf("is too short (minimum is %d characters)", PasswordMinLength))
	}
	return fields
}

// Register creates an account and issues its first session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user.User, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	if fields := in.validate(); !fields.Empty() {
		return user.User{}, "", FailFields("Registration failed", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return user.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	item := user.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, &item); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			fields := FieldErrors{}
			fields.Add("email", "has already been taken")
			return user.User{}, "", FailFields("Registration failed", fields)
		}
		return user.User{}, "", fmt.Errorf("create user: %w", err)
	}

	s.listCache.Delete(ctx, usersFirstPageKey)

	raw, err := s.startSession(ctx, &item)
	if err != nil {
		return user.User{}, "", err
	}
	return item, raw, nil
}

// Login verifies credentials and rotates the session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (user.User, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return user.User{}, "", Failf(ErrUnauthorized, "Invalid email or password")
	}

	item, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return user.User{}, "", Failf(ErrUnauthorized, "Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)) != nil {
		return user.User{}, "", Failf(ErrUnauthorized, "Invalid email or password")
	}

	raw, err := s.startSession(ctx, &item)
	if err != nil {
		return user.User{}, "", err
	}
	return item, raw, nil
}

// Logout clears the stored token, ending the active session.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	if err := s.userRepo.SetValidToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("clear valid token: %w", err)
	}
	return nil
}

// UpdatePassword changes the password after re-verifying the current
// one. The active session token survives the change.
func (s *AuthService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.UpdatePassword")
	defer span.End()

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return Failf(ErrNotFound, "User not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(currentPassword)) != nil {
		return Failf(ErrUnauthorized, "Current password is incorrect")
	}

	if len(newPassword) < PasswordMinLength {
		fields := FieldErrors{}
		fields.Add("new_password", fmt.Sprintf("is too short (minimum is %d characters)", PasswordMinLength))
		return FailFields("Password update failed", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	item.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// AuthenticateToken resolves a presented bearer token to its user. A
// token authenticates only while it matches the user's stored one.
func (s *AuthService) AuthenticateToken(ctx context.Context, raw string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.AuthenticateToken")
	defer span.End()

	claims, err := token.Verify(raw)
	if err != nil {
		return user.User{}, Failf(ErrUnauthorized, "Invalid token")
	}
	if claims.Context != token.ContextUser {
		return user.User{}, Failf(ErrUnauthorized, "Invalid token")
	}

	item, exists, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists || !item.HasValidToken(raw) {
		return user.User{}, Failf(ErrUnauthorized, "Invalid token")
	}

	return item, nil
}

func (s *AuthService) startSession(ctx context.Context, item *user.User) (string, error) {
	raw, err := token.Issue(token.Claims{UserID: item.ID, Context: token.ContextUser})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	if err := s.userRepo.SetValidToken(ctx, item.ID, &raw); err != nil {
		return "", fmt.Errorf("store valid token: %w", err)
	}
	item.ValidToken = &raw
	return raw, nil
}
