package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type SearchProjectsUseCase struct {
	storage  port.ProjectStoragePort
	userRepo port.UserRepositoryPort
}

func NewSearchProjectsUseCase(storage port.ProjectStoragePort, userRepo port.UserRepositoryPort) *SearchProjectsUseCase {
	return &SearchProjectsUseCase{storage: storage, userRepo: userRepo}
}

func (uc *SearchProjectsUseCase) Execute(ctx context.Context, filters domain.ProjectFilters, pagination domain.Pagination, viewer *domain.Claims) (*domain.PaginatedProjects, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProjects",
		"page":     pagination.Page,
		"limit":    pagination.Limit,
	})

	ucLogger.Info("Use case started", nil)

	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 || pagination.Limit > maxPageLimit {
		pagination.Limit = 20
	}

	isAdmin := viewer.IsAdmin()
	result, err := uc.storage.FindWithFilters(ctx, filters, pagination, isAdmin)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	// Непривилегированному зрителю страница отдается с наложением видимости.
	if !isAdmin {
		attrs, err := viewerAttributes(ctx, uc.userRepo, viewer)
		if err != nil {
			ucLogger.Error("Failed to resolve viewer attribute permissions", err, nil)
			return nil, err
		}
		for i := range result.Projects {
			result.Projects[i].ApplyVisibility(false)
			result.Projects[i].FilterAttributes(attrs)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Projects),
	})

	return result, nil
}
