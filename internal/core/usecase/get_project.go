package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type GetProjectUseCase struct {
	storage  port.ProjectStoragePort
	userRepo port.UserRepositoryPort
}

func NewGetProjectUseCase(storage port.ProjectStoragePort, userRepo port.UserRepositoryPort) *GetProjectUseCase {
	return &GetProjectUseCase{storage: storage, userRepo: userRepo}
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, id int64, viewer *domain.Claims) (*domain.Project, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetProject",
		"project_id": id,
	})

	ucLogger.Info("Use case started", nil)

	isAdmin := viewer.IsAdmin()
	project, err := uc.storage.GetByID(ctx, id, isAdmin)
	if err != nil {
		ucLogger.Warn("Project lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if !isAdmin {
		attrs, err := viewerAttributes(ctx, uc.userRepo, viewer)
		if err != nil {
			ucLogger.Error("Failed to resolve viewer attribute permissions", err, nil)
			return nil, err
		}
		project.ApplyVisibility(false)
		project.FilterAttributes(attrs)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return project, nil
}
