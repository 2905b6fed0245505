package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item *User) error
	GetByID(ctx context.Context, id int64) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context, limit, offset int) ([]User, int, error)
	Update(ctx context.Context, item User) error
	SetValidToken(ctx context.Context, id int64, token *string) error
}
