package port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// MediaStoragePort - хранилище метаданных медиафайлов.
type MediaStoragePort interface {
	Create(ctx context.Context, media *domain.Media) (*domain.Media, error)
	GetByID(ctx context.Context, id int64) (*domain.Media, error)
	SetVisibility(ctx context.Context, id int64, visible bool) (*domain.Media, error)
	Delete(ctx context.Context, id int64) error
}
