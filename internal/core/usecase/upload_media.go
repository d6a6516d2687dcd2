package usecase

import (
	"context"
	"fmt"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type UploadMediaUseCase struct {
	media    port.MediaStoragePort
	projects port.ProjectStoragePort
	files    port.FileStoragePort
	activity port.ActivityLogPort
}

func NewUploadMediaUseCase(media port.MediaStoragePort, projects port.ProjectStoragePort, files port.FileStoragePort, activity port.ActivityLogPort) *UploadMediaUseCase {
	return &UploadMediaUseCase{media: media, projects: projects, files: files, activity: activity}
}

func (uc *UploadMediaUseCase) Execute(ctx context.Context, upload domain.MediaUpload, actor domain.Claims) (*domain.Media, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UploadMedia",
		"project_id": upload.ProjectID,
		"media_type": upload.MediaType,
	})

	ucLogger.Info("Use case started", nil)

	if !domain.ValidMediaType(upload.MediaType) {
		ucLogger.Warn("Validation failed: unknown media type", nil)
		return nil, fmt.Errorf("%w: unknown media type %q", domain.ErrValidation, upload.MediaType)
	}
	if upload.FileName == "" || upload.Content == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}

	// Проект должен существовать до записи файла на диск.
	if _, err := uc.projects.GetByID(ctx, upload.ProjectID, true); err != nil {
		ucLogger.Warn("Target project lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	storedName, size, err := uc.files.Save(ctx, upload.FileName, upload.Content)
	if err != nil {
		ucLogger.Error("Failed to save file to disk", err, nil)
		return nil, err
	}

	media := &domain.Media{
		ProjectID:     upload.ProjectID,
		MediaType:     domain.MediaType(upload.MediaType),
		FileName:      upload.FileName,
		FilePath:      storedName,
		FileSize:      size,
		Configuration: upload.Configuration,
		Description:   upload.Description,
		IsVisible:     true,
		UploadedBy:    &actor.UserID,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := uc.media.Create(ctx, media)
	if err != nil {
		ucLogger.Error("Storage failed to create media record", err, nil)
		// Файл без записи в базе никому не нужен.
		if rmErr := uc.files.Remove(ctx, storedName); rmErr != nil {
			ucLogger.Warn("Failed to clean up orphaned file", port.Fields{"error": rmErr.Error()})
		}
		return nil, err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "media_uploaded",
		EntityType: "media",
		EntityID:   &created.ID,
		Details:    map[string]any{"file_name": created.FileName, "media_type": string(created.MediaType)},
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"media_id": created.ID})
	return created, nil
}
