package delivery

import (
	"errors"
	"testing"
)

func TestClassifyLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]Category{
		"":        CategoryLegal,
		"wide":    CategoryWide,
		" WD ":    CategoryWide,
		"no-ball": CategoryNoBall,
		"nb":      CategoryNoBall,
		"bye":     CategoryBye,
		"leg-bye": CategoryLegBye,
		"LB":      CategoryLegBye,
		"penalty": CategoryLegal,
	}
	for label, want := range tests {
		if got := ClassifyLabel(label); got != want {
			t.Fatalf("label %q: expected %s, got %s", label, want, got)
		}
	}
}

func TestClassifyRunSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    RawEvent
		batter int
		extras int
		bowler int
		legal  bool
		faced  bool
	}{
		{
			name:   "legal boundary",
			raw:    RawEvent{RunsScored: 4, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"},
			batter: 4, extras: 0, bowler: 4, legal: true, faced: true,
		},
		{
			name:   "wide with one run",
			raw:    RawEvent{RunsScored: 1, ExtrasLabel: "wide", BowlerID: "b1"},
			batter: 0, extras: 1, bowler: 1, legal: false, faced: false,
		},
		{
			name:   "wide with no runs still costs one",
			raw:    RawEvent{ExtrasLabel: "wd", StrikerID: "s1", BowlerID: "b1"},
			batter: 0, extras: 1, bowler: 1, legal: false, faced: false,
		},
		{
			name:   "no-ball hit for four",
			raw:    RawEvent{RunsScored: 4, ExtrasLabel: "nb", StrikerID: "s1", BowlerID: "b1"},
			batter: 4, extras: 1, bowler: 5, legal: false, faced: false,
		},
		{
			name:   "leg byes not charged to bowler",
			raw:    RawEvent{RunsScored: 2, ExtrasLabel: "leg-bye", StrikerID: "s1", BowlerID: "b1"},
			batter: 0, extras: 2, bowler: 0, legal: true, faced: true,
		},
		{
			name:   "byes from extras count",
			raw:    RawEvent{ExtrasLabel: "bye", ExtrasCount: 3, StrikerID: "s1", BowlerID: "b1"},
			batter: 0, extras: 3, bowler: 0, legal: true, faced: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Classify(tc.raw)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if got.BatterRuns != tc.batter || got.ExtrasRuns != tc.extras || got.BowlerRuns() != tc.bowler {
				t.Fatalf("expected batter=%d extras=%d bowler=%d, got %d/%d/%d",
					tc.batter, tc.extras, tc.bowler, got.BatterRuns, got.ExtrasRuns, got.BowlerRuns())
			}
			if got.IsLegal() != tc.legal || got.Faced() != tc.faced {
				t.Fatalf("expected legal=%v faced=%v, got %v/%v", tc.legal, tc.faced, got.IsLegal(), got.Faced())
			}
		})
	}
}

func TestClassifyValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawEvent
	}{
		{name: "missing bowler", raw: RawEvent{StrikerID: "s1"}},
		{name: "legal without striker", raw: RawEvent{BowlerID: "b1"}},
		{name: "negative runs", raw: RawEvent{RunsScored: -1, StrikerID: "s1", BowlerID: "b1"}},
		{name: "negative extras", raw: RawEvent{ExtrasLabel: "bye", ExtrasCount: -2, StrikerID: "s1", BowlerID: "b1"}},
		{name: "wicket without dismissal", raw: RawEvent{IsWicket: true, StrikerID: "s1", BowlerID: "b1"}},
		{name: "same batters", raw: RawEvent{StrikerID: "s1", NonStrikerID: "s1", BowlerID: "b1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Classify(tc.raw); !errors.Is(err, ErrInvalidDelivery) {
				t.Fatalf("expected ErrInvalidDelivery, got %v", err)
			}
		})
	}
}

func TestOversLabel(t *testing.T) {
	t.Parallel()

	if got := OversLabel(20); got != "3.2" {
		t.Fatalf("expected 3.2, got %s", got)
	}
	if got := PositionLabel(4, 3); got != "3.3" {
		t.Fatalf("expected 3.3, got %s", got)
	}
}

func TestRunsRunIgnoresInputField(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"bye", "lb"} {
		fromRuns, err := Classify(RawEvent{ExtrasLabel: label, RunsScored: 1, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"})
		if err != nil {
			t.Fatalf("classify %s from runs: %v", label, err)
		}
		fromCount, err := Classify(RawEvent{ExtrasLabel: label, ExtrasCount: 1, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"})
		if err != nil {
			t.Fatalf("classify %s from extras count: %v", label, err)
		}
		if fromRuns.RunsRun() != 1 || fromCount.RunsRun() != 1 {
			t.Fatalf("expected one run crossed for %s, got %d and %d", label, fromRuns.RunsRun(), fromCount.RunsRun())
		}
	}

	wide, err := Classify(RawEvent{ExtrasLabel: "wd", RunsScored: 1, StrikerID: "s1", NonStrikerID: "s2", BowlerID: "b1"})
	if err != nil {
		t.Fatalf("classify wide: %v", err)
	}
	if wide.RunsRun() != 0 {
		t.Fatalf("wides never rotate strike, got %d", wide.RunsRun())
	}
}
