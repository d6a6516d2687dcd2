package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type SetMediaVisibilityUseCase interface {
	Execute(ctx context.Context, id int64, visible bool, actor domain.Claims) (*domain.Media, error)
}
