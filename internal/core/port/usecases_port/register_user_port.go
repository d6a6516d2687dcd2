package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type RegisterUserUseCase interface {
	Execute(ctx context.Context, email, password, name string) (*domain.LoginResult, error)
}
