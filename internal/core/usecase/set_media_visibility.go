package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type SetMediaVisibilityUseCase struct {
	media    port.MediaStoragePort
	activity port.ActivityLogPort
}

func NewSetMediaVisibilityUseCase(media port.MediaStoragePort, activity port.ActivityLogPort) *SetMediaVisibilityUseCase {
	return &SetMediaVisibilityUseCase{media: media, activity: activity}
}

func (uc *SetMediaVisibilityUseCase) Execute(ctx context.Context, id int64, visible bool, actor domain.Claims) (*domain.Media, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SetMediaVisibility",
		"media_id": id,
		"visible":  visible,
	})

	ucLogger.Info("Use case started", nil)

	updated, err := uc.media.SetVisibility(ctx, id, visible)
	if err != nil {
		ucLogger.Warn("Storage failed to update media visibility", port.Fields{"error": err.Error()})
		return nil, err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "media_visibility_changed",
		EntityType: "media",
		EntityID:   &updated.ID,
	})

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
