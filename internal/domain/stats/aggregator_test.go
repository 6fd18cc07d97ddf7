package stats

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
)

func buildLog(t *testing.T, raws []delivery.RawEvent) []delivery.Delivery {
	t.Helper()

	state := match.NewState(match.Match{ID: "m1", TeamAID: "ta", TeamBID: "tb", OversLimit: 2, CurrentInnings: 1})
	log := make([]delivery.Delivery, 0, len(raws))
	for _, raw := range raws {
		if state.Phase == match.PhaseMatchComplete {
			break
		}
		classified, err := delivery.Classify(raw)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		out, _, err := state.Submit(classified)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		log = append(log, out)
	}
	return log
}

func randomRaws(seed int64, n int) []delivery.RawEvent {
	rng := rand.New(rand.NewSource(seed))
	labels := []string{"", "", "", "", "wide", "nb", "bye", "leg-bye"}
	runs := []int{0, 0, 1, 1, 2, 3, 4, 6}
	out := make([]delivery.RawEvent, 0, n)
	for i := 0; i < n; i++ {
		raw := delivery.RawEvent{
			RunsScored:   runs[rng.Intn(len(runs))],
			ExtrasLabel:  labels[rng.Intn(len(labels))],
			StrikerID:    "p" + string(rune('a'+rng.Intn(4))),
			BowlerID:     "b" + string(rune('a'+rng.Intn(3))),
			NonStrikerID: "ns",
		}
		if rng.Intn(9) == 0 {
			raw.IsWicket = true
			raw.DismissalText = "bowled"
		}
		out = append(out, raw)
	}
	return out
}

func TestIncrementalFoldEqualsRecompute(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 20; seed++ {
		log := buildLog(t, randomRaws(seed, 40))

		incremental := NewAggregator("m1")
		for i, d := range log {
			if err := incremental.Apply(d); err != nil {
				t.Fatalf("seed %d apply %d: %v", seed, i, err)
			}
			full, err := Recompute("m1", log[:i+1])
			if err != nil {
				t.Fatalf("seed %d recompute %d: %v", seed, i, err)
			}
			if !reflect.DeepEqual(incremental.Snapshot(), full.Snapshot()) {
				t.Fatalf("seed %d prefix %d: incremental fold diverged from recompute", seed, i+1)
			}
		}
	}
}

func TestApplyRejectsReplayedSequence(t *testing.T) {
	t.Parallel()

	log := buildLog(t, []delivery.RawEvent{
		{RunsScored: 1, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
		{RunsScored: 2, StrikerID: "s2", NonStrikerID: "s1", BowlerID: "b1"},
	})
	agg, err := Recompute("m1", log)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if err := agg.Apply(log[0]); err == nil {
		t.Fatalf("expected ErrOutOfSequence for replayed delivery")
	}
}

func TestWideChargesBowlerNotBatter(t *testing.T) {
	t.Parallel()

	log := buildLog(t, []delivery.RawEvent{
		{RunsScored: 1, ExtrasLabel: "wide", StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
	})
	agg, err := Recompute("m1", log)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	inn := agg.Snapshot().Innings[0]

	if inn.Extras.Wides != 1 || inn.Extras.Total() != 1 || inn.Runs != 1 {
		t.Fatalf("expected one wide extra, got extras=%+v runs=%d", inn.Extras, inn.Runs)
	}
	if inn.LegalBalls != 0 || inn.Deliveries != 1 {
		t.Fatalf("expected no legal ball, got legal=%d deliveries=%d", inn.LegalBalls, inn.Deliveries)
	}
	if inn.Bowling[0].RunsConceded != 1 || inn.Bowling[0].LegalBalls != 0 {
		t.Fatalf("unexpected bowling line %+v", inn.Bowling[0])
	}
	if inn.Bowling[0].Economy() != 0 {
		t.Fatalf("economy without legal balls must be 0, got %v", inn.Bowling[0].Economy())
	}
	for _, b := range inn.Batting {
		if b.Balls != 0 || b.Runs != 0 {
			t.Fatalf("wide credited batter %+v", b)
		}
	}
}

func TestByesExcludedFromBowlerAndBoundaries(t *testing.T) {
	t.Parallel()

	log := buildLog(t, []delivery.RawEvent{
		{RunsScored: 4, ExtrasLabel: "bye", StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
		{RunsScored: 4, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
		{RunsScored: 6, ExtrasLabel: "nb", StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
	})
	agg, err := Recompute("m1", log)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	inn := agg.Snapshot().Innings[0]
	s1 := inn.Batting[0]

	if s1.Runs != 10 || s1.Balls != 2 || s1.Fours != 1 || s1.Sixes != 0 {
		t.Fatalf("unexpected batting line %+v", s1)
	}
	if inn.Bowling[0].RunsConceded != 11 || inn.Bowling[0].NoBalls != 1 {
		t.Fatalf("unexpected bowling line %+v", inn.Bowling[0])
	}
	if inn.Extras.Byes != 4 || inn.Extras.NoBalls != 1 || inn.Runs != 15 {
		t.Fatalf("unexpected totals extras=%+v runs=%d", inn.Extras, inn.Runs)
	}
}

func TestMaidenAndFallOfWicket(t *testing.T) {
	t.Parallel()

	raws := make([]delivery.RawEvent, 0, 6)
	for i := 0; i < 5; i++ {
		raws = append(raws, delivery.RawEvent{StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"})
	}
	raws = append(raws, delivery.RawEvent{IsWicket: true, DismissalText: "bowled", StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"})

	agg, err := Recompute("m1", buildLog(t, raws))
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	inn := agg.Snapshot().Innings[0]

	bowl := inn.Bowling[0]
	if bowl.Maidens != 1 || bowl.Wickets != 1 || bowl.Dots != 6 || bowl.Overs() != "1.0" {
		t.Fatalf("unexpected bowling line %+v", bowl)
	}
	if len(inn.FallOfWickets) != 1 || inn.FallOfWickets[0].PlayerID != "s1" || inn.FallOfWickets[0].Overs != "1.0" {
		t.Fatalf("unexpected fall of wickets %+v", inn.FallOfWickets)
	}
	if !inn.Batting[0].Out || inn.Batting[0].Dismissal != "bowled" {
		t.Fatalf("expected s1 dismissed, got %+v", inn.Batting[0])
	}
	if inn.Batting[1].PlayerID != "s2" || inn.Batting[1].Position != 2 || inn.Batting[1].Balls != 0 {
		t.Fatalf("expected non-striker listed second, got %+v", inn.Batting[1])
	}
}

func TestBattingPositionFollowsFirstStrike(t *testing.T) {
	t.Parallel()

	log := buildLog(t, []delivery.RawEvent{
		{RunsScored: 0, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
		{IsWicket: true, DismissalText: "caught", StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
		{RunsScored: 2, StrikerID: "s3", NonStrikerID: "s2", BowlerID: "b1"},
		{RunsScored: 1, StrikerID: "s3", NonStrikerID: "s2", BowlerID: "b1"},
	})
	agg, err := Recompute("m1", log)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	inn := agg.Snapshot().Innings[0]

	want := map[string]int{"s1": 1, "s3": 2, "s2": 3}
	for _, b := range inn.Batting {
		if want[b.PlayerID] != b.Position {
			t.Fatalf("player %s: expected position %d, got %d", b.PlayerID, want[b.PlayerID], b.Position)
		}
	}
}

func TestRates(t *testing.T) {
	t.Parallel()

	if Average(40, 0) != nil {
		t.Fatalf("average for a player never out must be nil")
	}
	if avg := Average(45, 2); avg == nil || *avg != 22.5 {
		t.Fatalf("unexpected average %v", avg)
	}
	if Economy(10, 0) != 0 || StrikeRate(10, 0) != 0 {
		t.Fatalf("rates over zero balls must be 0")
	}
	if got := Round2(StrikeRate(10, 3)); got != 333.33 {
		t.Fatalf("expected 333.33, got %v", got)
	}
	if got := Round2(Economy(7, 4)); got != 10.5 {
		t.Fatalf("expected 10.5, got %v", got)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    delivery.Delivery
		want string
	}{
		{d: delivery.Delivery{Category: delivery.CategoryLegal}, want: "."},
		{d: delivery.Delivery{Category: delivery.CategoryLegal, BatterRuns: 4}, want: "4"},
		{d: delivery.Delivery{Category: delivery.CategoryLegal, IsWicket: true}, want: "W"},
		{d: delivery.Delivery{Category: delivery.CategoryWide, ExtrasRuns: 1}, want: "1wd"},
		{d: delivery.Delivery{Category: delivery.CategoryNoBall, ExtrasRuns: 1, BatterRuns: 4}, want: "nb+4"},
		{d: delivery.Delivery{Category: delivery.CategoryLegBye, ExtrasRuns: 2}, want: "2lb"},
	}
	for _, tc := range tests {
		if got := Outcome(tc.d); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
