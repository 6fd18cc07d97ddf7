package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
)

func TestCareerRepositoryApplyMatchIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCareerRepository()
	figures := []stats.PlayerFigures{
		{
			PlayerID: "mi-01",
			Batting:  []stats.Batting{{PlayerID: "mi-01", Innings: 1, Runs: 54, Balls: 30, Fours: 5, Sixes: 2}},
		},
		{PlayerID: "mi-11"},
	}

	applied, err := repo.ApplyMatch(ctx, "m1", "T20", figures)
	if err != nil || !applied {
		t.Fatalf("first apply: applied=%v err=%v", applied, err)
	}
	applied, err = repo.ApplyMatch(ctx, "m1", "T20", figures)
	if err != nil || applied {
		t.Fatalf("second apply must be skipped: applied=%v err=%v", applied, err)
	}

	got, ok, err := repo.Get(ctx, "mi-01", "T20")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Matches != 1 || got.Runs != 54 || got.HalfCenturies != 1 {
		t.Fatalf("unexpected career stats %+v", got)
	}
	if _, ok, _ := repo.Get(ctx, "mi-11", "T20"); ok {
		t.Fatalf("player without figures must not get a record")
	}
	if _, ok, _ := repo.Get(ctx, "mi-01", "ODI"); ok {
		t.Fatalf("formats must be kept apart")
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	applied, err = repo.ApplyMatch(ctx, "m1", "T20", figures)
	if err != nil || !applied {
		t.Fatalf("apply after reset: applied=%v err=%v", applied, err)
	}
}
