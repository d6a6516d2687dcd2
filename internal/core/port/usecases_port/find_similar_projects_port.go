package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type FindSimilarProjectsUseCase interface {
	Execute(ctx context.Context, id int64, viewer *domain.Claims) ([]domain.ScoredProject, error)
}
