package usecase

import (
	"context"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type LoginUserUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort) *LoginUserUseCase {
	return &LoginUserUseCase{userRepo: userRepo, tokenSvc: tokenSvc}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})

	ucLogger.Info("Use case started: attempting to log in", nil)

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return nil, err
	}
	// Несуществующий email и неверный пароль неразличимы для клиента.
	if user == nil || !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, domain.ErrInvalidCredentials
	}

	// При включенной 2FA токен не выдается до проверки одноразового кода.
	if user.TwoFactorEnabled {
		ucLogger.Info("Password accepted, awaiting TOTP code", port.Fields{"user_id": user.ID.String()})
		return &domain.LoginResult{Requires2FA: true, User: user}, nil
	}

	token, err := uc.tokenSvc.GenerateToken(user)
	if err != nil {
		ucLogger.Error("Failed to generate token", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user logged in", port.Fields{"user_id": user.ID.String()})
	return &domain.LoginResult{Token: token, User: user}, nil
}
