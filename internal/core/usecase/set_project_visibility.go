package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type SetProjectVisibilityUseCase struct {
	storage  port.ProjectStoragePort
	activity port.ActivityLogPort
}

func NewSetProjectVisibilityUseCase(storage port.ProjectStoragePort, activity port.ActivityLogPort) *SetProjectVisibilityUseCase {
	return &SetProjectVisibilityUseCase{storage: storage, activity: activity}
}

func (uc *SetProjectVisibilityUseCase) Execute(ctx context.Context, id int64, recordVisible *bool, settings map[string]bool, actor domain.Claims) (*domain.Project, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "SetProjectVisibility",
		"project_id": id,
	})

	ucLogger.Info("Use case started", nil)

	if recordVisible == nil && len(settings) == 0 {
		ucLogger.Warn("Validation failed: nothing to change", nil)
		return nil, fmt.Errorf("%w: is_visible or visibility_settings is required", domain.ErrValidation)
	}

	validated, err := domain.ValidateVisibilitySettings(settings)
	if err != nil {
		ucLogger.Warn("Validation failed: bad visibility settings", port.Fields{"error": err.Error()})
		return nil, err
	}

	updated, err := uc.storage.SetVisibility(ctx, id, recordVisible, validated)
	if err != nil {
		ucLogger.Warn("Storage failed to update visibility", port.Fields{"error": err.Error()})
		return nil, err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "project_visibility_changed",
		EntityType: "project",
		EntityID:   &updated.ID,
	})

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
