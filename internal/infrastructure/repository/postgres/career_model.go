package postgres

import (
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	qb "github.com/riskibarqy/cricket-scorer/internal/platform/querybuilder"
)

type careerStatsTableModel struct {
	PlayerID       string    `db:"player_public_id"`
	Format         string    `db:"format"`
	Matches        int       `db:"matches"`
	BattingInnings int       `db:"batting_innings"`
	Runs           int       `db:"runs"`
	Balls          int       `db:"balls"`
	Fours          int       `db:"fours"`
	Sixes          int       `db:"sixes"`
	Centuries      int       `db:"centuries"`
	HalfCenturies  int       `db:"half_centuries"`
	HighestScore   int       `db:"highest_score"`
	HighestNotOut  bool      `db:"highest_not_out"`
	TimesOut       int       `db:"times_out"`
	BowlingInnings int       `db:"bowling_innings"`
	LegalBalls     int       `db:"legal_balls"`
	RunsConceded   int       `db:"runs_conceded"`
	Wickets        int       `db:"wickets"`
	Maidens        int       `db:"maidens"`
	BestWickets    int       `db:"best_wickets"`
	BestRuns       int       `db:"best_runs"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type careerAppliedMatchInsertModel struct {
	MatchID   string    `db:"match_public_id"`
	Format    string    `db:"format"`
	AppliedAt time.Time `db:"applied_at"`
}

// careerStatsUpsertSuffix overwrites every column except the key on conflict.
var careerStatsUpsertSuffix = func() string {
	cols := make([]string, 0)
	for _, col := range qb.Columns(careerStatsTableModel{}) {
		if col == "player_public_id" || col == "format" {
			continue
		}
		cols = append(cols, col+" = EXCLUDED."+col)
	}
	return "ON CONFLICT (player_public_id, format) DO UPDATE SET " + strings.Join(cols, ", ")
}()

func careerStatsFromRow(row careerStatsTableModel) careerstats.CareerStats {
	return careerstats.CareerStats{
		PlayerID:       row.PlayerID,
		Format:         row.Format,
		Matches:        row.Matches,
		BattingInnings: row.BattingInnings,
		Runs:           row.Runs,
		Balls:          row.Balls,
		Fours:          row.Fours,
		Sixes:          row.Sixes,
		Centuries:      row.Centuries,
		HalfCenturies:  row.HalfCenturies,
		HighestScore:   row.HighestScore,
		HighestNotOut:  row.HighestNotOut,
		TimesOut:       row.TimesOut,
		BowlingInnings: row.BowlingInnings,
		LegalBalls:     row.LegalBalls,
		RunsConceded:   row.RunsConceded,
		Wickets:        row.Wickets,
		Maidens:        row.Maidens,
		BestWickets:    row.BestWickets,
		BestRuns:       row.BestRuns,
		UpdatedAt:      row.UpdatedAt,
	}
}

func careerStatsToRow(item careerstats.CareerStats) careerStatsTableModel {
	return careerStatsTableModel{
		PlayerID:       item.PlayerID,
		Format:         item.Format,
		Matches:        item.Matches,
		BattingInnings: item.BattingInnings,
		Runs:           item.Runs,
		Balls:          item.Balls,
		Fours:          item.Fours,
		Sixes:          item.Sixes,
		Centuries:      item.Centuries,
		HalfCenturies:  item.HalfCenturies,
		HighestScore:   item.HighestScore,
		HighestNotOut:  item.HighestNotOut,
		TimesOut:       item.TimesOut,
		BowlingInnings: item.BowlingInnings,
		LegalBalls:     item.LegalBalls,
		RunsConceded:   item.RunsConceded,
		Wickets:        item.Wickets,
		Maidens:        item.Maidens,
		BestWickets:    item.BestWickets,
		BestRuns:       item.BestRuns,
		UpdatedAt:      item.UpdatedAt,
	}
}
