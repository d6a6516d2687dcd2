package port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// UserRepositoryPort - хранилище учётных записей.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail возвращает (nil, nil), если пользователь не найден.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID возвращает (nil, nil), если пользователь не найден.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*domain.User, error)
	SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*domain.User, error)
	UpdateVisibleAttributes(ctx context.Context, id uuid.UUID, attrs domain.AttributeVisibility) (*domain.User, error)

	// SetTwoFactorSecret сохраняет секрет, не включая 2FA.
	SetTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string) error
	// SetTwoFactorEnabled включает/выключает 2FA; при выключении секрет стирается.
	SetTwoFactorEnabled(ctx context.Context, id uuid.UUID, enabled bool) error

	Delete(ctx context.Context, id uuid.UUID) error
}
