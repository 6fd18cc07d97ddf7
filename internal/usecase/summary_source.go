package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	"github.com/riskibarqy/cricket-scorer/internal/platform/cache"
	"github.com/riskibarqy/cricket-scorer/internal/platform/resilience"
)

// summarySource derives match summaries from the delivery log. It keeps one
// aggregator per match and folds only the deliveries appended since the last
// read; the snapshot cache is keyed by match version and never authoritative.
type summarySource struct {
	deliveryRepo delivery.Repository
	snapshots    *cache.Store[stats.Summary]
	locks        resilience.KeyedMutex

	mu          sync.Mutex
	aggregators map[string]*stats.Aggregator
}

func newSummarySource(deliveryRepo delivery.Repository, snapshots *cache.Store[stats.Summary]) *summarySource {
	if snapshots == nil {
		snapshots = cache.NewStore[stats.Summary](0)
	}
	return &summarySource{
		deliveryRepo: deliveryRepo,
		snapshots:    snapshots,
		aggregators:  make(map[string]*stats.Aggregator),
	}
}

func (s *summarySource) Summary(ctx context.Context, m match.Match) (stats.Summary, error) {
	key := cache.Key("summary", m.ID, strconv.FormatInt(m.Version, 10))
	return s.snapshots.GetOrLoad(ctx, key, func(ctx context.Context) (stats.Summary, error) {
		return s.load(ctx, m.ID)
	})
}

func (s *summarySource) load(ctx context.Context, matchID string) (stats.Summary, error) {
	unlock := s.locks.Lock(matchID)
	defer unlock()

	log, err := s.deliveryRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("list deliveries: %w", err)
	}

	s.mu.Lock()
	agg := s.aggregators[matchID]
	s.mu.Unlock()

	if agg == nil || !continues(agg, log) {
		agg, err = stats.Recompute(matchID, log)
		if err != nil {
			return stats.Summary{}, fmt.Errorf("recompute match %s: %w", matchID, err)
		}
	} else {
		for _, d := range log[agg.Sequence():] {
			if err := agg.Apply(d); err != nil {
				return stats.Summary{}, fmt.Errorf("fold match %s: %w", matchID, err)
			}
		}
	}

	s.mu.Lock()
	s.aggregators[matchID] = agg
	s.mu.Unlock()

	return agg.Snapshot(), nil
}

// Forget drops the cached aggregator and snapshots of a match.
func (s *summarySource) Forget(ctx context.Context, matchID string) {
	s.mu.Lock()
	delete(s.aggregators, matchID)
	s.mu.Unlock()
	s.snapshots.DeletePrefix(ctx, cache.Key("summary", matchID)+":")
}

// continues reports whether log extends what agg has already folded.
func continues(agg *stats.Aggregator, log []delivery.Delivery) bool {
	applied := agg.Sequence()
	if applied > len(log) {
		return false
	}
	if applied == 0 {
		return true
	}
	return log[applied-1].Sequence == applied
}
