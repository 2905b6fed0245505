package fixture

import "context"

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item *Fixture) error
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	// Search returns the fixtures satisfying every present predicate in
	// the filter, ordered by (match_date, id), plus the unpaginated
	// total.
	Search(ctx context.Context, filter Filter, limit, offset int) ([]Fixture, int, error)
	// ExistsPair reports whether another fixture already uses the same
	// home/away pair. excludeID skips the fixture being updated.
	ExistsPair(ctx context.Context, homeTeamID, awayTeamID, excludeID int64) (bool, error)
	Update(ctx context.Context, item Fixture) error
	Delete(ctx context.Context, id int64) (bool, error)
}
