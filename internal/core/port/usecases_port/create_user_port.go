package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type CreateUserUseCase interface {
	Execute(ctx context.Context, email, password, name, role string, actor domain.Claims) (*domain.User, error)
}
