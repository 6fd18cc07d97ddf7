package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	qb "github.com/riskibarqy/cricket-scorer/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", matchInsertFromDomain(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("match %s already exists: %w", m.ID, err)
		}
		return fmt.Errorf("insert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(qb.Columns(matchTableModel{})...).From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.list(ctx)
}

func (r *MatchRepository) ListByStatus(ctx context.Context, status match.Status) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("status", string(status)))
}

func (r *MatchRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(qb.Columns(matchTableModel{})...).From("matches").
		Where(conditions...).
		OrderBy("scheduled_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

// Save locks the match row, checks the version and writes the delivery and
// the new projection in one transaction.
func (r *MatchRepository) Save(ctx context.Context, m match.Match, expectedVersion int64, appended *delivery.Delivery) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("version").From("matches").
		Where(qb.Eq("public_id", m.ID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock match query: %w", err)
	}
	var stored int64
	if err := tx.GetContext(ctx, &stored, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("save match %s: not found", m.ID)
		}
		return fmt.Errorf("lock match: %w", err)
	}
	if stored != expectedVersion {
		return fmt.Errorf("%w: match %s is at version %d, expected %d", match.ErrVersionConflict, m.ID, stored, expectedVersion)
	}

	if appended != nil {
		insertQuery, insertArgs, err := qb.InsertModel("deliveries", deliveryInsertFromDomain(*appended), "")
		if err != nil {
			return fmt.Errorf("build insert delivery query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: delivery %d of match %s already stored", match.ErrVersionConflict, appended.Sequence, m.ID)
			}
			return fmt.Errorf("insert delivery: %w", err)
		}
	}

	updateQuery, updateArgs, err := qb.Update("matches").
		Set("current_innings", m.CurrentInnings).
		Set("batting_team_public_id", m.BattingTeamID).
		Set("first_innings_team_public_id", m.FirstInningsTeamID).
		Set("inning1_complete", m.Inning1Complete).
		Set("status", string(m.Status)).
		Set("winner_team_public_id", m.WinnerTeamID).
		Set("tied", m.Tied).
		Set("result_text", m.ResultText).
		Set("completed_at", toNullTime(m.CompletedAt)).
		Set("version", m.Version).
		Set("updated_at", m.UpdatedAt).
		Where(
			qb.Eq("public_id", m.ID),
			qb.Eq("version", expectedVersion),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: match %s changed concurrently", match.ErrVersionConflict, m.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save match tx: %w", err)
	}
	return nil
}
