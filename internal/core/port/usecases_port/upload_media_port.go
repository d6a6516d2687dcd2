package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type UploadMediaUseCase interface {
	Execute(ctx context.Context, upload domain.MediaUpload, actor domain.Claims) (*domain.Media, error)
}
