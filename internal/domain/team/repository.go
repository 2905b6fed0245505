package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item *Team) error
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	List(ctx context.Context, limit, offset int) ([]Team, int, error)
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, id int64) (bool, error)
}
