package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type UpdateProjectUseCase interface {
	Execute(ctx context.Context, id int64, update domain.ProjectUpdate, actor domain.Claims) (*domain.Project, error)
}
