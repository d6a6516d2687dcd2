package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type CreateProjectUseCase interface {
	Execute(ctx context.Context, project *domain.Project, actor domain.Claims) (*domain.Project, error)
}
