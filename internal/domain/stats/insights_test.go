package stats

import (
	"strings"
	"testing"
)

func TestTopScorersBreakTiesByStrikeRate(t *testing.T) {
	t.Parallel()

	ranked := TopScorers([]Batting{
		{PlayerID: "a", Runs: 30, Balls: 30},
		{PlayerID: "b", Runs: 30, Balls: 20},
		{PlayerID: "c", Runs: 50, Balls: 60},
		{PlayerID: "d", Runs: 30, Balls: 20},
	}, 3)

	got := []string{ranked[0].PlayerID, ranked[1].PlayerID, ranked[2].PlayerID}
	if strings.Join(got, ",") != "c,b,d" {
		t.Fatalf("unexpected ranking %v", got)
	}
}

func TestBuildInsights(t *testing.T) {
	t.Parallel()

	summary := Summary{
		MatchID:  "m1",
		Sequence: 40,
		Innings: []InningsSummary{
			{
				Number:        1,
				BattingTeamID: "ta",
				Runs:          120,
				Wickets:       6,
				LegalBalls:    60,
				Batting: []Batting{
					{PlayerID: "a1", Position: 1, Runs: 40, Balls: 30, Sixes: 2, Out: true},
					{PlayerID: "a4", Position: 4, Runs: 35, Balls: 20, Sixes: 3},
					{PlayerID: "a5", Position: 5, Runs: 12, Balls: 10},
				},
				Bowling: []Bowling{
					{PlayerID: "b1", LegalBalls: 24, RunsConceded: 20, Wickets: 3},
					{PlayerID: "b2", LegalBalls: 24, RunsConceded: 30, Wickets: 3},
				},
			},
			{
				Number:        2,
				BattingTeamID: "tb",
				Runs:          80,
				Wickets:       2,
				LegalBalls:    45,
				Batting: []Batting{
					{PlayerID: "b1", Position: 1, Runs: 50, Balls: 40, Sixes: 1},
				},
			},
		},
	}

	names := map[string]string{"ta": "Alpha", "tb": "Bravo", "b1": "Bowler One", "a4": "Lower Four"}
	insights := BuildInsights(summary, 2, func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	})

	if len(insights.TopScorers) != 2 || insights.TopScorers[0].PlayerID != "b1" {
		t.Fatalf("unexpected top scorers %+v", insights.TopScorers)
	}
	if insights.SixHitters[0].PlayerID != "a4" {
		t.Fatalf("expected a4 to lead sixes, got %+v", insights.SixHitters)
	}
	if insights.LowOrderCount != 1 || insights.LowOrder[0].PlayerID != "a4" {
		t.Fatalf("expected one low-order contribution, got %+v", insights.LowOrder)
	}
	if insights.BestBowlers[0].PlayerID != "b1" {
		t.Fatalf("expected b1 best bowler, got %+v", insights.BestBowlers)
	}
	if len(insights.TeamTotals) != 2 || insights.TeamTotals[0].Overs != "10.0" || insights.TeamTotals[0].RunRate != 12 {
		t.Fatalf("unexpected team totals %+v", insights.TeamTotals)
	}

	joined := strings.Join(insights.Narrative, "\n")
	for _, want := range []string{
		"Alpha scored 120/6 in 10.0 overs (RR 12.00)",
		"Top scorer: Bowler One 50* off 40 balls",
		"Best bowling: Bowler One 3/20 in 4.0 overs",
		"Most sixes: Lower Four with 3",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("narrative missing %q:\n%s", want, joined)
		}
	}
}
