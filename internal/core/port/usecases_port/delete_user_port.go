package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

type DeleteUserUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, actor domain.Claims) error
}
