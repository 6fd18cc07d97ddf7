package match

import "time"

type ChangeKind string

const (
	ChangeDelivery        ChangeKind = "DELIVERY"
	ChangeInningsComplete ChangeKind = "INNINGS_COMPLETE"
	ChangeMatchComplete   ChangeKind = "MATCH_COMPLETE"
)

// Change tells subscribers that a match moved to Version and should be refetched.
type Change struct {
	MatchID    string
	Version    int64
	Sequence   int
	Kind       ChangeKind
	Status     Status
	OccurredAt time.Time
}
