package usecase

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type CreateProjectUseCase struct {
	storage  port.ProjectStoragePort
	activity port.ActivityLogPort
}

func NewCreateProjectUseCase(storage port.ProjectStoragePort, activity port.ActivityLogPort) *CreateProjectUseCase {
	return &CreateProjectUseCase{storage: storage, activity: activity}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, project *domain.Project, actor domain.Claims) (*domain.Project, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "CreateProject",
		"project_name": project.ProjectName,
	})

	ucLogger.Info("Use case started", nil)

	project.ProjectName = strings.TrimSpace(project.ProjectName)
	if project.ProjectName == "" {
		ucLogger.Warn("Validation failed: empty project name", nil)
		return nil, fmt.Errorf("%w: project_name is required", domain.ErrValidation)
	}

	// Разрешение коллизии имен: среди проектов того же застройщика в той же
	// локации имя должно быть уникальным, иначе добавляется маркер копии.
	developer := derefOrEmpty(project.DeveloperName)
	location := derefOrEmpty(project.Location)
	existingNames, err := uc.storage.FindNamesForDedup(ctx, project.ProjectName, developer, location)
	if err != nil {
		ucLogger.Error("Failed to load names for duplicate resolution", err, nil)
		return nil, err
	}

	resolvedName := domain.ResolveUniqueName(project.ProjectName, existingNames)
	if resolvedName != project.ProjectName {
		ucLogger.Info("Duplicate name resolved", port.Fields{"resolved_name": resolvedName})
		project.ProjectName = resolvedName
	}

	created, err := uc.storage.Create(ctx, project)
	if err != nil {
		ucLogger.Error("Storage failed to create project", err, nil)
		return nil, err
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "project_created",
		EntityType: "project",
		EntityID:   &created.ID,
		Details:    map[string]any{"project_name": created.ProjectName},
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"project_id": created.ID})
	return created, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
