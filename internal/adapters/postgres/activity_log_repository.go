package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-service/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityLogAdapter struct {
	pool *pgxpool.Pool
}

func NewActivityLogAdapter(pool *pgxpool.Pool) *ActivityLogAdapter {
	return &ActivityLogAdapter{pool: pool}
}

// Record пишет запись журнала действий.
func (a *ActivityLogAdapter) Record(ctx context.Context, entry domain.ActivityEntry) error {
	var details []byte
	if len(entry.Details) > 0 {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to encode activity details: %w", err)
		}
		details = b
	}

	_, err := a.pool.Exec(ctx,
		`INSERT INTO activity_log (user_id, action, entity_type, entity_id, details)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.UserID, entry.Action, entry.EntityType, entry.EntityID, details,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}
