package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	careerstatsmock "github.com/riskibarqy/cricket-scorer/internal/mocks/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

func TestCareerService_OnMatchCompletedRejectsLiveMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)

	if err := env.career.OnMatchCompleted(context.Background(), m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unfinished match, got %v", err)
	}
}

func TestCareerService_RebuildMatchesIncrementalApply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	first := env.playOneOverMatch(t)
	second := env.playOneOverMatch(t)

	before, ok, err := env.careers.Get(ctx, "b1", "T20")
	if err != nil || !ok {
		t.Fatalf("get career before rebuild: ok=%v err=%v", ok, err)
	}
	if before.Matches != 2 || before.Runs != 16 {
		t.Fatalf("unexpected incremental career %+v", before)
	}

	if err := env.career.OnMatchCompleted(ctx, first); err != nil {
		t.Fatalf("reapply completed match: %v", err)
	}
	again, _, _ := env.careers.Get(ctx, "b1", "T20")
	if again.Matches != 2 {
		t.Fatalf("reapplying a match must be ignored, got %d matches", again.Matches)
	}

	result, err := env.career.Rebuild(ctx)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if result.Matches != 2 || result.Applied != 2 {
		t.Fatalf("unexpected rebuild result %+v (matches %s, %s)", result, first.ID, second.ID)
	}

	after, ok, err := env.careers.Get(ctx, "b1", "T20")
	if err != nil || !ok {
		t.Fatalf("get career after rebuild: ok=%v err=%v", ok, err)
	}
	after.UpdatedAt = before.UpdatedAt
	if after != before {
		t.Fatalf("rebuild diverged from incremental apply:\nbefore=%+v\nafter=%+v", before, after)
	}
}

func TestCareerService_ApplyFailureUsingMockery(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.playOneOverMatch(t)

	careerRepo := careerstatsmock.NewRepository(t)
	careerRepo.
		On("ApplyMatch", mock.Anything, m.ID, "T20", mock.AnythingOfType("[]stats.PlayerFigures")).
		Return(false, errors.New("db down")).
		Once()

	svc := NewCareerService(env.matches, env.matches, careerRepo, 1, logging.NewNop())
	err := svc.OnMatchCompleted(context.Background(), m)
	if err == nil || err.Error() != "apply career stats: db down" {
		t.Fatalf("expected wrapped apply error, got %v", err)
	}
}

func TestCareerService_RebuildStopsWhenResetFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.playOneOverMatch(t)

	careerRepo := careerstatsmock.NewRepository(t)
	careerRepo.
		On("Reset", mock.Anything).
		Return(errors.New("db down")).
		Once()

	svc := NewCareerService(env.matches, env.matches, careerRepo, 2, logging.NewNop())
	if _, err := svc.Rebuild(context.Background()); err == nil {
		t.Fatalf("expected rebuild to fail when reset fails")
	}
	careerRepo.AssertNotCalled(t, "ApplyMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
