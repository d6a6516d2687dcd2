package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type VerifyTOTPUseCase interface {
	Execute(ctx context.Context, email, code string) (*domain.LoginResult, error)
}
