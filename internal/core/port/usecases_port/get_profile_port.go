package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetProfileUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
