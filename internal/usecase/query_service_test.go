package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestQueryService_ScorecardAndInsights(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	done := env.playOneOverMatch(t)

	card, err := env.query.GetScorecard(ctx, done.ID)
	if err != nil {
		t.Fatalf("get scorecard: %v", err)
	}
	if len(card.Summary.Innings) != 2 {
		t.Fatalf("expected two innings, got %d", len(card.Summary.Innings))
	}
	first, second := card.Summary.Innings[0], card.Summary.Innings[1]
	if first.Runs != 6 || first.LegalBalls != 6 || first.BattingTeamID != "alpha" {
		t.Fatalf("unexpected first innings %+v", first)
	}
	if second.Runs != 8 || second.Wickets != 0 {
		t.Fatalf("unexpected second innings %+v", second)
	}
	if card.Names.Resolve("alpha") != "Alpha" || card.Names.Resolve("b1") != "bravo player 1" {
		t.Fatalf("unexpected names %v", card.Names)
	}
	if card.Names.Resolve("ghost") != "ghost" {
		t.Fatalf("unknown ids resolve to themselves")
	}

	insights, err := env.query.GetInsights(ctx, done.ID, 2)
	if err != nil {
		t.Fatalf("get insights: %v", err)
	}
	if len(insights.Insights.TopScorers) != 2 || insights.Insights.TopScorers[0].PlayerID != "b1" {
		t.Fatalf("expected b1 top scorer, got %+v", insights.Insights.TopScorers)
	}
	if len(insights.Insights.SixHitters) == 0 || insights.Insights.SixHitters[0].PlayerID != "b1" {
		t.Fatalf("expected b1 leading six hitters, got %+v", insights.Insights.SixHitters)
	}
	if len(insights.Insights.TeamTotals) != 2 || len(insights.Insights.Narrative) == 0 {
		t.Fatalf("expected team totals and narrative, got %+v", insights.Insights)
	}
}

func TestQueryService_PlayerStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	done := env.playOneOverMatch(t)

	stats, err := env.query.GetPlayerMatchStats(ctx, done.ID, "a4")
	if err != nil {
		t.Fatalf("get player match stats: %v", err)
	}
	bowling := stats.Figures.BowlingTotals()
	if bowling.LegalBalls != 3 || bowling.RunsConceded != 8 {
		t.Fatalf("unexpected a4 bowling %+v", bowling)
	}

	if _, err := env.query.GetPlayerMatchStats(ctx, done.ID, "zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown player to be not found, got %v", err)
	}
	if _, err := env.query.GetPlayerMatchStats(ctx, "missing", "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown match to be not found, got %v", err)
	}

	career, err := env.query.GetPlayerCareerStats(ctx, "a3", "")
	if err != nil {
		t.Fatalf("get career for idle player: %v", err)
	}
	if career.PlayerID != "a3" || career.Format != "T20" || career.Matches != 0 {
		t.Fatalf("expected zero T20 record, got %+v", career)
	}

	career, err = env.query.GetPlayerCareerStats(ctx, "a1", "t20")
	if err != nil {
		t.Fatalf("get career: %v", err)
	}
	if career.Matches != 1 || career.Runs != 5 {
		t.Fatalf("unexpected a1 career %+v", career)
	}
}

func TestQueryService_MatchStateInChase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)
	env.submit(t, m.ID, ball(1, 1, 4, "a1", "a2", "b4"))
	if _, err := env.scoring.CompleteCurrentInnings(ctx, m.ID, ""); err != nil {
		t.Fatalf("close innings: %v", err)
	}
	env.submit(t, m.ID, ball(1, 1, 1, "b1", "b2", "a4"))

	live, err := env.query.GetMatchState(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match state: %v", err)
	}
	state := live.State
	if state.Innings != 2 || state.Target() != 5 || state.RemainingBalls() != 119 {
		t.Fatalf("unexpected chase state %+v", state)
	}
	want := 4.0 * 6 / 119
	if math.Abs(state.RequiredRunRate()-want) > 1e-9 {
		t.Fatalf("unexpected required run rate %f, want %f", state.RequiredRunRate(), want)
	}
	if over, ballNo := state.Next(); over != 1 || ballNo != 2 {
		t.Fatalf("expected next ball 1.2, got %d.%d", over, ballNo)
	}
	if state.StrikerID != "b2" || state.BowlerID != "a4" {
		t.Fatalf("unexpected selections striker=%s bowler=%s", state.StrikerID, state.BowlerID)
	}
}

func TestQueryService_ScorecardFollowsNewDeliveries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)
	env.submit(t, m.ID, ball(1, 1, 4, "a1", "a2", "b4"))

	card, err := env.query.GetScorecard(ctx, m.ID)
	if err != nil {
		t.Fatalf("get scorecard: %v", err)
	}
	if card.Summary.Innings[0].Runs != 4 {
		t.Fatalf("expected 4 runs, got %d", card.Summary.Innings[0].Runs)
	}

	env.submit(t, m.ID, ball(1, 2, 6, "a1", "a2", "b4"))
	card, err = env.query.GetScorecard(ctx, m.ID)
	if err != nil {
		t.Fatalf("get scorecard: %v", err)
	}
	if card.Summary.Innings[0].Runs != 10 || card.Summary.Sequence != 2 {
		t.Fatalf("expected cached summary to be refreshed, got %+v", card.Summary.Innings[0])
	}
}
