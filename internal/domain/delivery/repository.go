package delivery

import "context"

// Repository exposes the append-only delivery log for reads.
// Appends go through match.Repository.Save so they commit with the match projection.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Delivery, error)
}
