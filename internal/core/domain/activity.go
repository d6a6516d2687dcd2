package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry - запись журнала действий. Пишется best-effort: ошибка
// записи логируется, но не проваливает основную операцию.
type ActivityEntry struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   *int64
	Details    map[string]any
	CreatedAt  time.Time
}
