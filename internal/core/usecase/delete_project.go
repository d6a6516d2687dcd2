package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type DeleteProjectUseCase struct {
	storage  port.ProjectStoragePort
	files    port.FileStoragePort
	activity port.ActivityLogPort
}

func NewDeleteProjectUseCase(storage port.ProjectStoragePort, files port.FileStoragePort, activity port.ActivityLogPort) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{storage: storage, files: files, activity: activity}
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, id int64, actor domain.Claims) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteProject",
		"project_id": id,
	})

	ucLogger.Info("Use case started", nil)

	filePaths, err := uc.storage.Delete(ctx, id)
	if err != nil {
		ucLogger.Warn("Storage failed to delete project", port.Fields{"error": err.Error()})
		return err
	}

	// Файлы зачищаются после удаления записей; осиротевший файл на диске
	// безопаснее потерянной ссылки в базе.
	for _, path := range filePaths {
		if err := uc.files.Remove(ctx, path); err != nil {
			ucLogger.Warn("Failed to remove media file from disk", port.Fields{
				"file_path": path,
				"error":     err.Error(),
			})
		}
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "project_deleted",
		EntityType: "project",
		EntityID:   &id,
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"removed_files": len(filePaths)})
	return nil
}
