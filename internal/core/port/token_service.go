package port

import (
	"catalog-service/internal/core/domain"
)

// TokenServicePort - выпуск и проверка токенов доступа.
type TokenServicePort interface {
	GenerateToken(user *domain.User) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}
