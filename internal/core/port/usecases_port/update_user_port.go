package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateUserUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, update domain.UserUpdate, actor domain.Claims) (*domain.User, error)
}
