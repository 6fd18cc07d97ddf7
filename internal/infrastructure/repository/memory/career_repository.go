package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
)

type careerKey struct {
	playerID string
	format   string
}

type CareerRepository struct {
	mu      sync.RWMutex
	records map[careerKey]careerstats.CareerStats
	applied map[string]struct{}
	now     func() time.Time
}

func NewCareerRepository() *CareerRepository {
	return &CareerRepository{
		records: make(map[careerKey]careerstats.CareerStats),
		applied: make(map[string]struct{}),
		now:     time.Now,
	}
}

func (r *CareerRepository) Get(_ context.Context, playerID, format string) (careerstats.CareerStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.records[careerKey{playerID: playerID, format: format}]
	return item, ok, nil
}

func (r *CareerRepository) ApplyMatch(_ context.Context, matchID, format string, figures []stats.PlayerFigures) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, done := r.applied[matchID]; done {
		return false, nil
	}
	r.applied[matchID] = struct{}{}

	now := r.now().UTC()
	for _, f := range figures {
		if !f.Played() {
			continue
		}
		key := careerKey{playerID: f.PlayerID, format: format}
		item, ok := r.records[key]
		if !ok {
			item = careerstats.CareerStats{PlayerID: f.PlayerID, Format: format}
		}
		item.Accumulate(f)
		item.UpdatedAt = now
		r.records[key] = item
	}
	return true, nil
}

func (r *CareerRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[careerKey]careerstats.CareerStats)
	r.applied = make(map[string]struct{})
	return nil
}
