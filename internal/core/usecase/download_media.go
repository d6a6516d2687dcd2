package usecase

import (
	"context"
	"io"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type DownloadMediaUseCase struct {
	media port.MediaStoragePort
	files port.FileStoragePort
}

func NewDownloadMediaUseCase(media port.MediaStoragePort, files port.FileStoragePort) *DownloadMediaUseCase {
	return &DownloadMediaUseCase{media: media, files: files}
}

func (uc *DownloadMediaUseCase) Execute(ctx context.Context, id int64, viewer *domain.Claims) (*domain.Media, io.ReadSeekCloser, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DownloadMedia",
		"media_id": id,
	})

	ucLogger.Info("Use case started", nil)

	media, err := uc.media.GetByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Media lookup failed", port.Fields{"error": err.Error()})
		return nil, nil, err
	}

	// Скрытое медиа для непривилегированного зрителя неотличимо от отсутствующего.
	if !media.IsVisible && !viewer.IsAdmin() {
		return nil, nil, domain.ErrMediaNotFound
	}

	content, err := uc.files.Open(ctx, media.FilePath)
	if err != nil {
		ucLogger.Error("Failed to open media file", err, port.Fields{"file_path": media.FilePath})
		return nil, nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return media, content, nil
}
