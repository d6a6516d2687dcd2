package usecase

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type CreateUserUseCase struct {
	userRepo port.UserRepositoryPort
	activity port.ActivityLogPort
}

func NewCreateUserUseCase(userRepo port.UserRepositoryPort, activity port.ActivityLogPort) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo, activity: activity}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, email, password, name, role string, actor domain.Claims) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateUser",
		"email":    email,
		"role":     role,
	})

	ucLogger.Info("Use case started", nil)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if role != "" && !domain.ValidRole(role) {
		ucLogger.Warn("Validation failed: unknown role", nil)
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	existingUser, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing email", err, nil)
		return nil, err
	}
	if existingUser != nil {
		ucLogger.Warn("Creation failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	user, err := domain.NewUser(email, password, name, role)
	if err != nil {
		ucLogger.Error("Failed to create new user domain object", err, nil)
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "user_created",
		EntityType: "user",
		Details:    map[string]any{"email": user.Email, "role": user.Role},
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": user.ID.String()})
	return user, nil
}
