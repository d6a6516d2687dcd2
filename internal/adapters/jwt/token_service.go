package token_adapter

import (
	"fmt"
	"time"

	"catalog-service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService - реализация TokenServicePort для JWT.
type TokenService struct {
	// Секретный ключ для подписи токенов. Должен быть длинным и сложным.
	// Хранится в конфиге и передается при создании сервиса.
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenService(signingKey string, tokenTTL time.Duration) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{signingKey: []byte(signingKey), tokenTTL: tokenTTL}, nil
}

// jwtCustomClaims - это наша реализация стандартных claims JWT.
type jwtCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken создает новый JWT токен.
func (s *TokenService) GenerateToken(user *domain.User) (string, error) {
	claims := &jwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "catalog-service",
		},
	}

	// Создаем токен с нашими claims и методом подписи HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidateToken проверяет токен.
func (s *TokenService) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем, что метод подписи - HS256, как мы и ожидали
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		// Истекший и поддельный токены наружу неразличимы.
		return nil, domain.ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		return &domain.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
	return nil, domain.ErrTokenInvalid
}
