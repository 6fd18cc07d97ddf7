package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
)

func newScheduledMatch(id string, at time.Time) match.Match {
	return match.Match{
		ID:          id,
		TeamAID:     TeamIDMumbai,
		TeamBID:     TeamIDChennai,
		Format:      match.DefaultFormat,
		OversLimit:  20,
		Status:      match.StatusScheduled,
		ScheduledAt: at,
		Version:     1,
	}
}

func TestMatchRepositorySaveComparesVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository()
	m := newScheduledMatch("m1", time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	next := m
	next.Version = 2
	next.Status = match.StatusLive
	first := &delivery.Delivery{ID: "d1", MatchID: "m1", Sequence: 1, Over: 0, Ball: 1}
	if err := repo.Save(ctx, next, 1, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	stale := next
	stale.Version = 2
	err := repo.Save(ctx, stale, 1, &delivery.Delivery{ID: "d2", MatchID: "m1", Sequence: 2})
	if !errors.Is(err, match.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	log, err := repo.ListByMatch(ctx, "m1")
	if err != nil {
		t.Fatalf("list deliveries: %v", err)
	}
	if len(log) != 1 || log[0].ID != "d1" {
		t.Fatalf("stale save must not append, got %+v", log)
	}

	stored, ok, err := repo.GetByID(ctx, "m1")
	if err != nil || !ok {
		t.Fatalf("get match: ok=%v err=%v", ok, err)
	}
	if stored.Version != 2 || stored.Status != match.StatusLive {
		t.Fatalf("unexpected stored match %+v", stored)
	}
}

func TestMatchRepositoryRejectsSequenceGap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(newScheduledMatch("m1", time.Now()))

	next := newScheduledMatch("m1", time.Now())
	next.Version = 2
	err := repo.Save(ctx, next, 1, &delivery.Delivery{ID: "d3", MatchID: "m1", Sequence: 3})
	if !errors.Is(err, match.ErrVersionConflict) {
		t.Fatalf("expected conflict on sequence gap, got %v", err)
	}
}

func TestMatchRepositoryListByStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	late := newScheduledMatch("b-late", base.Add(48*time.Hour))
	early := newScheduledMatch("a-early", base)
	done := newScheduledMatch("c-done", base.Add(time.Hour))
	done.Status = match.StatusCompleted
	repo := NewMatchRepository(late, early, done)

	scheduled, err := repo.ListByStatus(ctx, match.StatusScheduled)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(scheduled) != 2 || scheduled[0].ID != "a-early" || scheduled[1].ID != "b-late" {
		t.Fatalf("unexpected scheduled matches %+v", scheduled)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(all))
	}

	if err := repo.Create(ctx, early); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}
}
