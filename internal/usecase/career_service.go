package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

const defaultRebuildWorkers = 4

type RebuildResult struct {
	Matches    int
	Applied    int
	DurationMs int64
}

// CareerService folds completed matches into per-format career records.
type CareerService struct {
	matchRepo    match.Repository
	deliveryRepo delivery.Repository
	careerRepo   careerstats.Repository
	workers      int
	logger       *logging.Logger
	now          func() time.Time
}

func NewCareerService(
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
	careerRepo careerstats.Repository,
	workers int,
	logger *logging.Logger,
) *CareerService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultRebuildWorkers
	}

	return &CareerService{
		matchRepo:    matchRepo,
		deliveryRepo: deliveryRepo,
		careerRepo:   careerRepo,
		workers:      workers,
		logger:       logger.Named("career"),
		now:          time.Now,
	}
}

// OnMatchCompleted applies a completed match once; repeated calls are ignored.
func (s *CareerService) OnMatchCompleted(ctx context.Context, m match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CareerService.OnMatchCompleted")
	defer span.End()

	if !m.IsCompleted() {
		return fmt.Errorf("%w: match %s is not completed", ErrInvalidInput, m.ID)
	}

	figures, err := s.matchFigures(ctx, m)
	if err != nil {
		return err
	}
	applied, err := s.careerRepo.ApplyMatch(ctx, m.ID, match.NormalizeFormat(m.Format), figures)
	if err != nil {
		return fmt.Errorf("apply career stats: %w", err)
	}
	s.logger.InfoContext(ctx, "career stats applied",
		"match_id", m.ID,
		"players", len(figures),
		"applied", applied,
	)
	return nil
}

// Rebuild clears career records and re-applies every completed match.
// Match figures are recomputed in parallel and applied in completion order.
func (s *CareerService) Rebuild(ctx context.Context) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CareerService.Rebuild")
	defer span.End()

	start := s.now()
	matches, err := s.matchRepo.ListByStatus(ctx, match.StatusCompleted)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list completed matches: %w", err)
	}

	type matchFigures struct {
		match   match.Match
		figures []stats.PlayerFigures
	}

	workers := pool.NewWithResults[matchFigures]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.workers)
	for _, m := range matches {
		workers.Go(func(ctx context.Context) (matchFigures, error) {
			figures, err := s.matchFigures(ctx, m)
			if err != nil {
				return matchFigures{}, err
			}
			return matchFigures{match: m, figures: figures}, nil
		})
	}
	computed, err := workers.Wait()
	if err != nil {
		return RebuildResult{}, fmt.Errorf("%w: recompute matches: %w", ErrDependencyUnavailable, err)
	}

	sort.SliceStable(computed, func(i, j int) bool {
		a, b := completedAt(computed[i].match), completedAt(computed[j].match)
		if !a.Equal(b) {
			return a.Before(b)
		}
		return computed[i].match.ID < computed[j].match.ID
	})

	if err := s.careerRepo.Reset(ctx); err != nil {
		return RebuildResult{}, fmt.Errorf("reset career stats: %w", err)
	}

	result := RebuildResult{Matches: len(computed)}
	for _, item := range computed {
		applied, err := s.careerRepo.ApplyMatch(ctx, item.match.ID, match.NormalizeFormat(item.match.Format), item.figures)
		if err != nil {
			return RebuildResult{}, fmt.Errorf("apply match %s: %w", item.match.ID, err)
		}
		if applied {
			result.Applied++
		}
	}
	result.DurationMs = s.now().Sub(start).Milliseconds()

	s.logger.InfoContext(ctx, "career stats rebuilt",
		"matches", result.Matches,
		"applied", result.Applied,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *CareerService) matchFigures(ctx context.Context, m match.Match) ([]stats.PlayerFigures, error) {
	log, err := s.deliveryRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	agg, err := stats.Recompute(m.ID, log)
	if err != nil {
		return nil, fmt.Errorf("recompute match %s: %w", m.ID, err)
	}

	summary := agg.Snapshot()
	ids := summary.PlayerIDs()
	sort.Strings(ids)
	out := make([]stats.PlayerFigures, 0, len(ids))
	for _, id := range ids {
		out = append(out, summary.Player(id))
	}
	return out, nil
}

func completedAt(m match.Match) time.Time {
	if m.CompletedAt != nil {
		return *m.CompletedAt
	}
	return m.UpdatedAt
}
