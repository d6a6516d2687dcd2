package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type BulkDeleteProjectsUseCase interface {
	Execute(ctx context.Context, ids []int64, actor domain.Claims) (int, error)
}
