package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type DeleteMediaUseCase struct {
	media    port.MediaStoragePort
	files    port.FileStoragePort
	activity port.ActivityLogPort
}

func NewDeleteMediaUseCase(media port.MediaStoragePort, files port.FileStoragePort, activity port.ActivityLogPort) *DeleteMediaUseCase {
	return &DeleteMediaUseCase{media: media, files: files, activity: activity}
}

func (uc *DeleteMediaUseCase) Execute(ctx context.Context, id int64, actor domain.Claims) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DeleteMedia",
		"media_id": id,
	})

	ucLogger.Info("Use case started", nil)

	media, err := uc.media.GetByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Media lookup failed", port.Fields{"error": err.Error()})
		return err
	}

	if err := uc.media.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage failed to delete media record", err, nil)
		return err
	}

	if err := uc.files.Remove(ctx, media.FilePath); err != nil {
		ucLogger.Warn("Failed to remove media file from disk", port.Fields{
			"file_path": media.FilePath,
			"error":     err.Error(),
		})
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "media_deleted",
		EntityType: "media",
		EntityID:   &id,
		Details:    map[string]any{"file_name": media.FileName},
	})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
