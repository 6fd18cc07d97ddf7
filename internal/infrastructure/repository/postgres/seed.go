package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/cricket-scorer/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo teams and players into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		query, args, err := qb.InsertModel("teams", teamInsertModel{
			PublicID: t.ID,
			Name:     t.Name,
			Short:    t.Short,
		}, "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed team %s query: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerInsertModel{
			PublicID:    p.ID,
			TeamID:      p.TeamID,
			Name:        p.Name,
			Role:        string(p.Role),
			BattingHand: p.BattingHand,
			BowlingArm:  p.BowlingArm,
			ImageURL:    p.ImageURL,
		}, "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
