package postgres

import (
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
)

type deliveryTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	MatchID       string    `db:"match_public_id"`
	Sequence      int       `db:"sequence"`
	Innings       int       `db:"innings"`
	Over          int       `db:"over_number"`
	Ball          int       `db:"ball_number"`
	Category      string    `db:"category"`
	RunsScored    int       `db:"runs_scored"`
	BatterRuns    int       `db:"batter_runs"`
	ExtrasRuns    int       `db:"extras_runs"`
	IsWicket      bool      `db:"is_wicket"`
	Dismissal     string    `db:"dismissal"`
	StrikerID     string    `db:"striker_public_id"`
	NonStrikerID  string    `db:"non_striker_public_id"`
	BowlerID      string    `db:"bowler_public_id"`
	BattingTeamID string    `db:"batting_team_public_id"`
	Commentary    string    `db:"commentary"`
	CreatedAt     time.Time `db:"created_at"`
}

type deliveryInsertModel struct {
	PublicID      string    `db:"public_id"`
	MatchID       string    `db:"match_public_id"`
	Sequence      int       `db:"sequence"`
	Innings       int       `db:"innings"`
	Over          int       `db:"over_number"`
	Ball          int       `db:"ball_number"`
	Category      string    `db:"category"`
	RunsScored    int       `db:"runs_scored"`
	BatterRuns    int       `db:"batter_runs"`
	ExtrasRuns    int       `db:"extras_runs"`
	IsWicket      bool      `db:"is_wicket"`
	Dismissal     string    `db:"dismissal"`
	StrikerID     string    `db:"striker_public_id"`
	NonStrikerID  string    `db:"non_striker_public_id"`
	BowlerID      string    `db:"bowler_public_id"`
	BattingTeamID string    `db:"batting_team_public_id"`
	Commentary    string    `db:"commentary"`
	CreatedAt     time.Time `db:"created_at"`
}

func deliveryFromRow(row deliveryTableModel) delivery.Delivery {
	return delivery.Delivery{
		ID:            row.PublicID,
		MatchID:       row.MatchID,
		Sequence:      row.Sequence,
		Innings:       row.Innings,
		Over:          row.Over,
		Ball:          row.Ball,
		Category:      delivery.Category(row.Category),
		RunsScored:    row.RunsScored,
		BatterRuns:    row.BatterRuns,
		ExtrasRuns:    row.ExtrasRuns,
		IsWicket:      row.IsWicket,
		Dismissal:     row.Dismissal,
		StrikerID:     row.StrikerID,
		NonStrikerID:  row.NonStrikerID,
		BowlerID:      row.BowlerID,
		BattingTeamID: row.BattingTeamID,
		Commentary:    row.Commentary,
		CreatedAt:     row.CreatedAt,
	}
}

func deliveryInsertFromDomain(d delivery.Delivery) deliveryInsertModel {
	return deliveryInsertModel{
		PublicID:      d.ID,
		MatchID:       d.MatchID,
		Sequence:      d.Sequence,
		Innings:       d.Innings,
		Over:          d.Over,
		Ball:          d.Ball,
		Category:      string(d.Category),
		RunsScored:    d.RunsScored,
		BatterRuns:    d.BatterRuns,
		ExtrasRuns:    d.ExtrasRuns,
		IsWicket:      d.IsWicket,
		Dismissal:     d.Dismissal,
		StrikerID:     d.StrikerID,
		NonStrikerID:  d.NonStrikerID,
		BowlerID:      d.BowlerID,
		BattingTeamID: d.BattingTeamID,
		Commentary:    d.Commentary,
		CreatedAt:     d.CreatedAt,
	}
}
