package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type ManageTwoFactorUseCase interface {
	// Setup генерирует и сохраняет секрет, не включая 2FA.
	Setup(ctx context.Context, userID uuid.UUID) (secret string, otpauthURL string, err error)
	// Enable включает 2FA после проверки кода от сохранённого секрета.
	Enable(ctx context.Context, userID uuid.UUID, code string) error
	// Disable выключает 2FA после проверки кода.
	Disable(ctx context.Context, userID uuid.UUID, code string) error
}
