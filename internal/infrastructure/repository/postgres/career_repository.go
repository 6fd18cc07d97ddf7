package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	qb "github.com/riskibarqy/cricket-scorer/internal/platform/querybuilder"
)

type CareerRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCareerRepository(db *sqlx.DB) *CareerRepository {
	return &CareerRepository{db: db, now: time.Now}
}

func (r *CareerRepository) Get(ctx context.Context, playerID, format string) (careerstats.CareerStats, bool, error) {
	query, args, err := qb.Select(qb.Columns(careerStatsTableModel{})...).From("career_stats").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("format", format),
		).
		ToSQL()
	if err != nil {
		return careerstats.CareerStats{}, false, fmt.Errorf("build get career stats query: %w", err)
	}

	var row careerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return careerstats.CareerStats{}, false, nil
		}
		return careerstats.CareerStats{}, false, fmt.Errorf("get career stats: %w", err)
	}

	return careerStatsFromRow(row), true, nil
}

// ApplyMatch claims the match in career_applied_matches first; a conflict there
// means the match was already folded in and nothing else is written.
func (r *CareerRepository) ApplyMatch(ctx context.Context, matchID, format string, figures []stats.PlayerFigures) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx apply career stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.now().UTC()
	claimQuery, claimArgs, err := qb.InsertModel("career_applied_matches", careerAppliedMatchInsertModel{
		MatchID:   matchID,
		Format:    format,
		AppliedAt: now,
	}, "ON CONFLICT (match_public_id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build claim career match query: %w", err)
	}
	claimed, err := tx.ExecContext(ctx, claimQuery, claimArgs...)
	if err != nil {
		return false, fmt.Errorf("claim career match: %w", err)
	}
	affected, err := claimed.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected claim career match: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	for _, f := range figures {
		if !f.Played() {
			continue
		}
		item, err := r.lockedRecord(ctx, tx, f.PlayerID, format)
		if err != nil {
			return false, err
		}
		item.Accumulate(f)
		item.UpdatedAt = now

		upsertQuery, upsertArgs, err := qb.InsertModel("career_stats", careerStatsToRow(item), careerStatsUpsertSuffix)
		if err != nil {
			return false, fmt.Errorf("build upsert career stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
			return false, fmt.Errorf("upsert career stats player=%s: %w", f.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit apply career stats tx: %w", err)
	}
	return true, nil
}

func (r *CareerRepository) lockedRecord(ctx context.Context, tx *sqlx.Tx, playerID, format string) (careerstats.CareerStats, error) {
	query, args, err := qb.Select(qb.Columns(careerStatsTableModel{})...).From("career_stats").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("format", format),
		).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return careerstats.CareerStats{}, fmt.Errorf("build lock career stats query: %w", err)
	}

	var row careerStatsTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return careerstats.CareerStats{PlayerID: playerID, Format: format}, nil
		}
		return careerstats.CareerStats{}, fmt.Errorf("lock career stats: %w", err)
	}
	return careerStatsFromRow(row), nil
}

func (r *CareerRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx reset career stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"career_stats", "career_applied_matches"} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset career stats tx: %w", err)
	}
	return nil
}
