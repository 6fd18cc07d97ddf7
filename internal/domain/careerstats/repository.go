package careerstats

import (
	"context"

	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
)

// Repository stores career aggregates. ApplyMatch is idempotent per match id:
// it returns false without writing when the match was already applied.
type Repository interface {
	Get(ctx context.Context, playerID, format string) (CareerStats, bool, error)
	ApplyMatch(ctx context.Context, matchID, format string, figures []stats.PlayerFigures) (bool, error)
	Reset(ctx context.Context) error
}
