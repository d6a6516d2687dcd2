package usecase

import (
	"context"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type VerifyTOTPUseCase struct {
	userRepo port.UserRepositoryPort
	totpSvc  port.TOTPServicePort
	tokenSvc port.TokenServicePort
}

func NewVerifyTOTPUseCase(userRepo port.UserRepositoryPort, totpSvc port.TOTPServicePort, tokenSvc port.TokenServicePort) *VerifyTOTPUseCase {
	return &VerifyTOTPUseCase{userRepo: userRepo, totpSvc: totpSvc, tokenSvc: tokenSvc}
}

func (uc *VerifyTOTPUseCase) Execute(ctx context.Context, email, code string) (*domain.LoginResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "VerifyTOTP",
		"email":    email,
	})

	ucLogger.Info("Use case started: verifying TOTP code", nil)

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("TOTP verification failed: user not found", nil)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		ucLogger.Warn("TOTP verification failed: 2FA is not configured", nil)
		return nil, domain.ErrTOTPNotConfigured
	}

	if !uc.totpSvc.Validate(code, *user.TwoFactorSecret) {
		ucLogger.Warn("TOTP verification failed: invalid code", nil)
		return nil, domain.ErrInvalidTOTPCode
	}

	token, err := uc.tokenSvc.GenerateToken(user)
	if err != nil {
		ucLogger.Error("Failed to generate token", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: TOTP verified, user logged in", port.Fields{"user_id": user.ID.String()})
	return &domain.LoginResult{Token: token, User: user}, nil
}
