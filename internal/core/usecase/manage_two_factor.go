package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type ManageTwoFactorUseCase struct {
	userRepo port.UserRepositoryPort
	totpSvc  port.TOTPServicePort
}

func NewManageTwoFactorUseCase(userRepo port.UserRepositoryPort, totpSvc port.TOTPServicePort) *ManageTwoFactorUseCase {
	return &ManageTwoFactorUseCase{userRepo: userRepo, totpSvc: totpSvc}
}

// Setup генерирует секрет и сохраняет его, не включая 2FA: включение
// происходит отдельным шагом после подтверждения кода.
func (uc *ManageTwoFactorUseCase) Setup(ctx context.Context, userID uuid.UUID) (string, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SetupTwoFactor",
		"user_id":  userID.String(),
	})

	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return "", "", err
	}
	if user == nil {
		return "", "", domain.ErrUserNotFound
	}

	secret, otpauthURL, err := uc.totpSvc.GenerateSecret(user.Email)
	if err != nil {
		ucLogger.Error("Failed to generate TOTP secret", err, nil)
		return "", "", err
	}

	if err := uc.userRepo.SetTwoFactorSecret(ctx, userID, secret); err != nil {
		ucLogger.Error("Repository failed to store TOTP secret", err, nil)
		return "", "", err
	}

	ucLogger.Info("Use case finished: TOTP secret issued", nil)
	return secret, otpauthURL, nil
}

// Enable включает 2FA после проверки кода от ранее сохраненного секрета.
func (uc *ManageTwoFactorUseCase) Enable(ctx context.Context, userID uuid.UUID, code string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "EnableTwoFactor",
		"user_id":  userID.String(),
	})

	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.TwoFactorSecret == nil {
		ucLogger.Warn("Enable failed: no TOTP secret stored", nil)
		return domain.ErrTOTPNotConfigured
	}

	if !uc.totpSvc.Validate(code, *user.TwoFactorSecret) {
		ucLogger.Warn("Enable failed: invalid TOTP code", nil)
		return domain.ErrInvalidTOTPCode
	}

	if err := uc.userRepo.SetTwoFactorEnabled(ctx, userID, true); err != nil {
		ucLogger.Error("Repository failed to enable 2FA", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: 2FA enabled", nil)
	return nil
}

// Disable выключает 2FA после проверки кода; секрет при этом стирается.
func (uc *ManageTwoFactorUseCase) Disable(ctx context.Context, userID uuid.UUID, code string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DisableTwoFactor",
		"user_id":  userID.String(),
	})

	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		ucLogger.Warn("Disable failed: 2FA is not enabled", nil)
		return domain.ErrTOTPNotConfigured
	}

	if !uc.totpSvc.Validate(code, *user.TwoFactorSecret) {
		ucLogger.Warn("Disable failed: invalid TOTP code", nil)
		return domain.ErrInvalidTOTPCode
	}

	if err := uc.userRepo.SetTwoFactorEnabled(ctx, userID, false); err != nil {
		ucLogger.Error("Repository failed to disable 2FA", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: 2FA disabled", nil)
	return nil
}
