package usecase

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type BulkDeleteProjectsUseCase struct {
	storage  port.ProjectStoragePort
	files    port.FileStoragePort
	activity port.ActivityLogPort
}

func NewBulkDeleteProjectsUseCase(storage port.ProjectStoragePort, files port.FileStoragePort, activity port.ActivityLogPort) *BulkDeleteProjectsUseCase {
	return &BulkDeleteProjectsUseCase{storage: storage, files: files, activity: activity}
}

// Execute удаляет проекты по списку идентификаторов. Отсутствующие
// пропускаются; возвращается число реально удаленных.
func (uc *BulkDeleteProjectsUseCase) Execute(ctx context.Context, ids []int64, actor domain.Claims) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "BulkDeleteProjects",
		"ids_count": len(ids),
	})

	ucLogger.Info("Use case started", nil)

	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids list is empty", domain.ErrValidation)
	}

	deleted := 0
	for _, id := range ids {
		filePaths, err := uc.storage.Delete(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProjectNotFound) {
				continue
			}
			ucLogger.Error("Storage failed during bulk delete", err, port.Fields{"project_id": id})
			return deleted, err
		}
		deleted++

		for _, path := range filePaths {
			if err := uc.files.Remove(ctx, path); err != nil {
				ucLogger.Warn("Failed to remove media file from disk", port.Fields{
					"file_path": path,
					"error":     err.Error(),
				})
			}
		}
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "projects_bulk_deleted",
		EntityType: "project",
		Details:    map[string]any{"requested": len(ids), "deleted": deleted},
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"deleted": deleted})
	return deleted, nil
}
