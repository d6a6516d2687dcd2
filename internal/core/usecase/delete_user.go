package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type DeleteUserUseCase struct {
	userRepo port.UserRepositoryPort
	activity port.ActivityLogPort
}

func NewDeleteUserUseCase(userRepo port.UserRepositoryPort, activity port.ActivityLogPort) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo, activity: activity}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uuid.UUID, actor domain.Claims) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "DeleteUser",
		"target_user_id": id.String(),
	})

	ucLogger.Info("Use case started", nil)

	// Собственную учетную запись удалить нельзя.
	if actor.UserID == id {
		ucLogger.Warn("Self-deletion attempt rejected", nil)
		return domain.ErrSelfModification
	}

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		ucLogger.Error("Repository failed to delete user", err, nil)
		return err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "user_deleted",
		EntityType: "user",
		Details:    map[string]any{"target_user_id": id.String(), "email": user.Email},
	})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
