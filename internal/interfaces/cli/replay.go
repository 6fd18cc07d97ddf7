package cli

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
)

type InningsLine struct {
	Number        int     `json:"number"`
	BattingTeamID string  `json:"battingTeamId"`
	Score         string  `json:"score"`
	Overs         string  `json:"overs"`
	RunRate       float64 `json:"runRate"`
	Extras        int     `json:"extras"`
}

// ReplayReport is the outcome of replaying one match log.
type ReplayReport struct {
	MatchID              string        `json:"matchId"`
	Status               string        `json:"status"`
	Version              int64         `json:"version"`
	Deliveries           int           `json:"deliveries"`
	Innings              []InningsLine `json:"innings"`
	Narrative            []string      `json:"narrative"`
	ProjectionConsistent bool          `json:"projectionConsistent"`
	Deterministic        bool          `json:"deterministic"`
	Mismatches           []string      `json:"mismatches,omitempty"`
}

func newReplayCommand(root *rootOptions) *cobra.Command {
	var (
		matchID string
		topN    int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a match log and verify the derived views",
		Long: `Replay reads the delivery log of a match, rebuilds the innings state and
the scorecard, and checks that:

  - the stored match row equals the projection of the replayed state
  - folding the log ball by ball gives the same figures as a full recompute

Exit codes:
  0 - views are consistent
  1 - a mismatch was found
  2 - command error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withStore(cmd.Context(), func(store Store) error {
				report, err := Replay(cmd.Context(), store, matchID, topN)
				if err != nil {
					return &ExitError{Code: ExitCommandError, Message: "replay match " + matchID, Err: err}
				}
				if err := printReplay(cmd.OutOrStdout(), root.format, report); err != nil {
					return err
				}
				if len(report.Mismatches) > 0 {
					return &ExitError{Code: ExitMismatch, Message: fmt.Sprintf("%d mismatch(es) in match %s", len(report.Mismatches), matchID)}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&matchID, "match", "", "match id (required)")
	_ = cmd.MarkFlagRequired("match")
	cmd.Flags().IntVar(&topN, "top", stats.DefaultTopN, "performers per narrative line")
	return cmd
}

// Replay rebuilds the views of matchID from its delivery log.
func Replay(ctx context.Context, store Store, matchID string, topN int) (ReplayReport, error) {
	m, ok, err := store.Matches.GetByID(ctx, matchID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return ReplayReport{}, fmt.Errorf("match %s not found", matchID)
	}
	log, err := store.Deliveries.ListByMatch(ctx, matchID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("list deliveries: %w", err)
	}

	report := ReplayReport{
		MatchID:    m.ID,
		Status:     string(m.Status),
		Version:    m.Version,
		Deliveries: len(log),
	}

	state, err := match.Replay(m, log)
	if err != nil {
		report.Mismatches = append(report.Mismatches, err.Error())
	} else {
		report.Mismatches = append(report.Mismatches, projectionMismatches(m, state)...)
	}
	report.ProjectionConsistent = len(report.Mismatches) == 0

	recomputed, err := stats.Recompute(m.ID, log)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("recompute: %w", err)
	}
	summary := recomputed.Snapshot()
	foldMismatches := foldMismatches(m.ID, log, summary)
	report.Deterministic = len(foldMismatches) == 0
	report.Mismatches = append(report.Mismatches, foldMismatches...)

	for _, in := range summary.Innings {
		report.Innings = append(report.Innings, InningsLine{
			Number:        in.Number,
			BattingTeamID: in.BattingTeamID,
			Score:         in.Score(),
			Overs:         in.Overs(),
			RunRate:       stats.Round2(in.RunRate()),
			Extras:        in.Extras.Total(),
		})
	}
	report.Narrative = stats.BuildInsights(summary, topN, nil).Narrative
	return report, nil
}

// projectionMismatches compares the stored row with what the log implies.
func projectionMismatches(stored match.Match, state match.State) []string {
	projected := state.Project(stored, stored.UpdatedAt, stored.ResultText)

	var out []string
	check := func(field string, got, want any) {
		if got != want {
			out = append(out, fmt.Sprintf("%s: stored %v, replayed %v", field, got, want))
		}
	}
	check("status", stored.Status, projected.Status)
	check("current_innings", stored.CurrentInnings, projected.CurrentInnings)
	check("batting_team_id", stored.BattingTeamID, projected.BattingTeamID)
	check("inning1_complete", stored.Inning1Complete, projected.Inning1Complete)
	check("winner_team_id", stored.WinnerTeamID, projected.WinnerTeamID)
	check("tied", stored.Tied, projected.Tied)
	return out
}

// foldMismatches applies the log one delivery at a time and compares every
// intermediate snapshot with a recompute of the same prefix.
func foldMismatches(matchID string, log []delivery.Delivery, final stats.Summary) []string {
	var out []string
	agg := stats.NewAggregator(matchID)
	for i, d := range log {
		if err := agg.Apply(d); err != nil {
			return append(out, fmt.Sprintf("fold delivery %d: %v", d.Sequence, err))
		}
		prefix, err := stats.Recompute(matchID, log[:i+1])
		if err != nil {
			return append(out, fmt.Sprintf("recompute prefix %d: %v", i+1, err))
		}
		if !reflect.DeepEqual(agg.Snapshot(), prefix.Snapshot()) {
			out = append(out, fmt.Sprintf("incremental figures differ from recompute after delivery %d", d.Sequence))
		}
	}
	if !reflect.DeepEqual(agg.Snapshot(), final) {
		out = append(out, "incremental figures differ from recompute of the full log")
	}
	return out
}

func printReplay(w io.Writer, format string, report ReplayReport) error {
	if format == "json" {
		return writeJSON(w, report)
	}

	fmt.Fprintf(w, "match %s (%s, version %d): %d deliveries\n", report.MatchID, report.Status, report.Version, report.Deliveries)
	for _, in := range report.Innings {
		fmt.Fprintf(w, "  innings %d  %-14s %7s  (%s ov, rr %.2f, extras %d)\n",
			in.Number, in.BattingTeamID, in.Score, in.Overs, in.RunRate, in.Extras)
	}
	for _, line := range report.Narrative {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	if len(report.Mismatches) == 0 {
		fmt.Fprintln(w, "OK: projection consistent, incremental fold matches recompute")
		return nil
	}
	for _, m := range report.Mismatches {
		fmt.Fprintf(w, "MISMATCH: %s\n", m)
	}
	return nil
}
