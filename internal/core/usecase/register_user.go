package usecase

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type RegisterUserUseCase struct {
	userRepo port.UserRepositoryPort
	tokenSvc port.TokenServicePort
}

func NewRegisterUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort) *RegisterUserUseCase {
	return &RegisterUserUseCase{userRepo: userRepo, tokenSvc: tokenSvc}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, email, password, name string) (*domain.LoginResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"email":    email,
	})

	ucLogger.Info("Use case started: attempting to register user", nil)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	existingUser, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existingUser != nil {
		ucLogger.Warn("Registration failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	// Самостоятельная регистрация всегда дает непривилегированную роль.
	user, err := domain.NewUser(email, password, name, domain.RoleUser)
	if err != nil {
		ucLogger.Error("Failed to create new user domain object", err, nil)
		return nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if err := uc.userRepo.Create(ctx, user); err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}

	token, err := uc.tokenSvc.GenerateToken(user)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful registration", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user registered successfully", nil)
	return &domain.LoginResult{Token: token, User: user}, nil
}
