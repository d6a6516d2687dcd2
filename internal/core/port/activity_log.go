package port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// ActivityLogPort - журнал действий пользователей.
type ActivityLogPort interface {
	Record(ctx context.Context, entry domain.ActivityEntry) error
}
