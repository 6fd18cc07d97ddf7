package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
)

// MatchRepository keeps matches and their delivery logs together so Save can
// compare the version and append in one critical section.
type MatchRepository struct {
	mu         sync.RWMutex
	matches    map[string]match.Match
	deliveries map[string][]delivery.Delivery
}

func NewMatchRepository(matches ...match.Match) *MatchRepository {
	r := &MatchRepository{
		matches:    make(map[string]match.Match, len(matches)),
		deliveries: make(map[string][]delivery.Delivery),
	}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := strings.TrimSpace(m.ID)
	if id == "" {
		return fmt.Errorf("match id is required")
	}
	if _, exists := r.matches[id]; exists {
		return fmt.Errorf("match %s already exists", id)
	}
	r.matches[id] = m
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) ListByStatus(_ context.Context, status match.Status) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.Status == status {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) Save(_ context.Context, m match.Match, expectedVersion int64, appended *delivery.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.matches[m.ID]
	if !ok {
		return fmt.Errorf("match %s not found", m.ID)
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: match %s is at version %d, expected %d", match.ErrVersionConflict, m.ID, stored.Version, expectedVersion)
	}

	if appended != nil {
		log := r.deliveries[m.ID]
		if appended.Sequence != len(log)+1 {
			return fmt.Errorf("%w: delivery sequence %d does not follow %d", match.ErrVersionConflict, appended.Sequence, len(log))
		}
		r.deliveries[m.ID] = append(log, *appended)
	}
	r.matches[m.ID] = m
	return nil
}

// ListByMatch returns a copy of the log in sequence order.
func (r *MatchRepository) ListByMatch(_ context.Context, matchID string) ([]delivery.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.deliveries[matchID]
	out := make([]delivery.Delivery, len(log))
	copy(out, log)
	return out, nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.Before(items[j].ScheduledAt)
		}
		return items[i].ID < items[j].ID
	})
}
