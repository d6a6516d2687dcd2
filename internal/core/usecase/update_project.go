package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type UpdateProjectUseCase struct {
	storage  port.ProjectStoragePort
	activity port.ActivityLogPort
}

func NewUpdateProjectUseCase(storage port.ProjectStoragePort, activity port.ActivityLogPort) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{storage: storage, activity: activity}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, id int64, update domain.ProjectUpdate, actor domain.Claims) (*domain.Project, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateProject",
		"project_id": id,
	})

	ucLogger.Info("Use case started", nil)

	isAdmin := actor.IsAdmin()
	if update.IsEmpty(isAdmin) {
		ucLogger.Warn("Validation failed: no updatable fields in request", nil)
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	updated, err := uc.storage.Update(ctx, id, update, isAdmin)
	if err != nil {
		ucLogger.Warn("Storage failed to update project", port.Fields{"error": err.Error()})
		return nil, err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "project_updated",
		EntityType: "project",
		EntityID:   &updated.ID,
		Details:    map[string]any{"project_name": updated.ProjectName},
	})

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
