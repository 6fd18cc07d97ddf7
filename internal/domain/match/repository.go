package match

import (
	"context"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
)

// Repository persists matches and commits deliveries together with the match projection.
type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	ListByStatus(ctx context.Context, status Status) ([]Match, error)
	// Save stores m when the persisted version equals expectedVersion, appending
	// appended (when non-nil) to the delivery log in the same unit of work.
	// A stale expectedVersion returns ErrVersionConflict and writes nothing.
	Save(ctx context.Context, m Match, expectedVersion int64, appended *delivery.Delivery) error
}
