package usecase

import (
	"context"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

// Максимум записей на странице поиска.
const maxPageLimit = 100

// viewerAttributes возвращает настройки видимости слотов атрибутов для
// непривилегированного зрителя. Для админа - nil (ничего не скрывается).
func viewerAttributes(ctx context.Context, userRepo port.UserRepositoryPort, viewer *domain.Claims) (domain.AttributeVisibility, error) {
	if viewer == nil || viewer.IsAdmin() {
		return nil, nil
	}
	user, err := userRepo.FindByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user.VisibleAttributes, nil
}

// recordActivity пишет запись в журнал действий. Сбой журнала не должен
// ронять основную операцию, поэтому ошибка только логируется.
func recordActivity(ctx context.Context, log port.ActivityLogPort, logger port.LoggerPort, entry domain.ActivityEntry) {
	if log == nil {
		return
	}
	if err := log.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record activity entry", port.Fields{
			"action": entry.Action,
			"error":  err.Error(),
		})
	}
}
