package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type GetProfileUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetProfileUseCase(userRepo port.UserRepositoryPort) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetProfile",
		"user_id":  userID.String(),
	})

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("Profile not found", nil)
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}
