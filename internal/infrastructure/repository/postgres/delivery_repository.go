package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	qb "github.com/riskibarqy/cricket-scorer/internal/platform/querybuilder"
)

// DeliveryRepository reads the log; appends are written by MatchRepository.Save.
type DeliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) ListByMatch(ctx context.Context, matchID string) ([]delivery.Delivery, error) {
	query, args, err := qb.Select(qb.Columns(deliveryTableModel{})...).From("deliveries").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select deliveries query: %w", err)
	}

	var rows []deliveryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select deliveries: %w", err)
	}

	out := make([]delivery.Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, deliveryFromRow(row))
	}
	return out, nil
}
