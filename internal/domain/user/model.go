package user

import (
	"errors"
	"time"
)

// ErrEmailTaken is reported by repositories when the unique email
// constraint rejects a write.
var ErrEmailTaken = errors.New("email is already taken")

// User is an API account. ValidToken holds the only bearer token the
// account currently accepts; rotating or clearing it invalidates every
// previously issued token.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Admin        bool
	ValidToken   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) HasValidToken(raw string) bool {
	return u.ValidToken != nil && *u.ValidToken == raw && raw != ""
}
