package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type SearchProjectsUseCase interface {
	Execute(ctx context.Context, filters domain.ProjectFilters, pagination domain.Pagination, viewer *domain.Claims) (*domain.PaginatedProjects, error)
}
