package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

// Сколько похожих проектов возвращается.
const similarProjectsLimit = 5

type FindSimilarProjectsUseCase struct {
	storage  port.ProjectStoragePort
	userRepo port.UserRepositoryPort
}

func NewFindSimilarProjectsUseCase(storage port.ProjectStoragePort, userRepo port.UserRepositoryPort) *FindSimilarProjectsUseCase {
	return &FindSimilarProjectsUseCase{storage: storage, userRepo: userRepo}
}

func (uc *FindSimilarProjectsUseCase) Execute(ctx context.Context, id int64, viewer *domain.Claims) ([]domain.ScoredProject, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "FindSimilarProjects",
		"project_id": id,
	})

	ucLogger.Info("Use case started", nil)

	isAdmin := viewer.IsAdmin()

	// Оценка считается по исходным полям опорного проекта, до наложения
	// видимости: скрытое поле все равно участвует в сравнении.
	ref, err := uc.storage.GetByID(ctx, id, isAdmin)
	if err != nil {
		ucLogger.Warn("Reference project lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	candidates, err := uc.storage.ListCandidates(ctx, id, isAdmin)
	if err != nil {
		ucLogger.Error("Storage failed to load similarity candidates", err, nil)
		return nil, err
	}

	ranked := domain.RankSimilar(ref, candidates, similarProjectsLimit)

	if !isAdmin {
		attrs, err := viewerAttributes(ctx, uc.userRepo, viewer)
		if err != nil {
			ucLogger.Error("Failed to resolve viewer attribute permissions", err, nil)
			return nil, err
		}
		for i := range ranked {
			ranked[i].Project.ApplyVisibility(false)
			ranked[i].Project.FilterAttributes(attrs)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"candidates": len(candidates),
		"matched":    len(ranked),
	})

	return ranked, nil
}
