package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type SetProjectVisibilityUseCase interface {
	Execute(ctx context.Context, id int64, recordVisible *bool, settings map[string]bool, actor domain.Claims) (*domain.Project, error)
}
