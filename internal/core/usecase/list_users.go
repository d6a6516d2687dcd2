package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type ListUsersUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewListUsersUseCase(userRepo port.UserRepositoryPort) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListUsers"})

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		ucLogger.Error("Repository failed to list users", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(users)})
	return users, nil
}
