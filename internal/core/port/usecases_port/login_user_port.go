package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type LoginUserUseCase interface {
	Execute(ctx context.Context, email, password string) (*domain.LoginResult, error)
}
