package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type ListUsersUseCase interface {
	Execute(ctx context.Context) ([]domain.User, error)
}
