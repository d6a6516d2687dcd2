package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type UpdateUserUseCase struct {
	userRepo port.UserRepositoryPort
	activity port.ActivityLogPort
}

func NewUpdateUserUseCase(userRepo port.UserRepositoryPort, activity port.ActivityLogPort) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo, activity: activity}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uuid.UUID, update domain.UserUpdate, actor domain.Claims) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "UpdateUser",
		"target_user_id": id.String(),
	})

	ucLogger.Info("Use case started", nil)

	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	if update.Role != nil {
		if !domain.ValidRole(*update.Role) {
			ucLogger.Warn("Validation failed: unknown role", nil)
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *update.Role)
		}
		// Админ не может снять админскую роль с самого себя.
		if actor.UserID == id && *update.Role != domain.RoleAdmin {
			ucLogger.Warn("Self-demotion attempt rejected", nil)
			return nil, domain.ErrSelfModification
		}
	}

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed while looking up user", err, nil)
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if update.Role != nil {
		if user, err = uc.userRepo.UpdateRole(ctx, id, *update.Role); err != nil {
			ucLogger.Error("Repository failed to update role", err, nil)
			return nil, err
		}
	}
	if update.IsVisible != nil {
		if user, err = uc.userRepo.SetVisibility(ctx, id, *update.IsVisible); err != nil {
			ucLogger.Error("Repository failed to update visibility", err, nil)
			return nil, err
		}
	}
	if len(update.VisibleAttributes) > 0 {
		if user, err = uc.userRepo.UpdateVisibleAttributes(ctx, id, update.VisibleAttributes); err != nil {
			ucLogger.Error("Repository failed to update attribute permissions", err, nil)
			return nil, err
		}
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "user_updated",
		EntityType: "user",
		Details:    map[string]any{"target_user_id": id.String()},
	})

	ucLogger.Info("Use case finished successfully", nil)
	return user, nil
}
