package usecases_port

import (
	"context"
	"io"

	"catalog-service/internal/core/domain"
)

type DownloadMediaUseCase interface {
	Execute(ctx context.Context, id int64, viewer *domain.Claims) (*domain.Media, io.ReadSeekCloser, error)
}
