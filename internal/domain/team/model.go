package team

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	NameMinLength = 4
	NameMaxLength = 30
)

// ErrNameTaken is reported by repositories when the unique name
// constraint rejects a write.
var ErrNameTaken = errors.New("team name is already taken")

// ErrInUse is reported by repositories when a delete is rejected
// because fixtures still reference the team.
var ErrInUse = errors.New("team is referenced by fixtures")

// Team is a football club that can appear on either side of a fixture.
type Team struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("team name is required")
	}
	if utf8.RuneCountInString(name) < NameMinLength {
		return fmt.Errorf("team name must be at least %d characters", NameMinLength)
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return fmt.Errorf("team name must be at most %d characters", NameMaxLength)
	}

	return nil
}
