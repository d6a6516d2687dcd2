package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type GetProjectUseCase interface {
	Execute(ctx context.Context, id int64, viewer *domain.Claims) (*domain.Project, error)
}
