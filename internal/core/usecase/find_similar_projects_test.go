package usecase

import (
	"context"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFindSimilarProjects(t *testing.T) {
	ref := &domain.Project{
		ID:             1,
		ProjectName:    "Skyline Heights",
		Location:       strPtr("Baner, Pune"),
		Configurations: []string{"2BHK"},
	}

	candidates := []domain.Project{
		{ID: 2, ProjectName: "Palm Grove", Location: strPtr("Baner"), Configurations: []string{"2BHK"}},
		{ID: 3, ProjectName: "Riverside", Location: strPtr("Wakad")},
	}

	t.Run("ranks candidates, zero scores fill the tail", func(t *testing.T) {
		storage := &fakeProjectStorage{getByIDResult: ref, candidates: candidates}
		admin := &domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}
		uc := NewFindSimilarProjectsUseCase(storage, newFakeUserRepo())

		ranked, err := uc.Execute(context.Background(), 1, admin)
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, int64(2), ranked[0].Project.ID)
		assert.Equal(t, 55, ranked[0].Score)
		assert.Equal(t, int64(3), ranked[1].Project.ID)
		assert.Equal(t, 0, ranked[1].Score)
	})

	t.Run("missing reference project propagates not found", func(t *testing.T) {
		storage := &fakeProjectStorage{getByIDErr: domain.ErrProjectNotFound}
		admin := &domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}
		uc := NewFindSimilarProjectsUseCase(storage, newFakeUserRepo())

		_, err := uc.Execute(context.Background(), 99, admin)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("non-admin results are redacted after scoring", func(t *testing.T) {
		viewer, err := domain.NewUser("agent@example.com", "secret123", "Agent", domain.RoleUser)
		require.NoError(t, err)

		// Бюджет кандидата скрыт настройками записи, но очки за пересечение
		// бюджетов всё равно начисляются.
		budgetMin, budgetMax := 5000000.0, 8000000.0
		hidden := domain.Project{
			ID:                 2,
			ProjectName:        "Palm Grove",
			Location:           strPtr("Baner"),
			BudgetMin:          &budgetMin,
			BudgetMax:          &budgetMax,
			VisibilitySettings: domain.VisibilitySettings{domain.FieldBudget: false},
		}
		refWithBudget := &domain.Project{
			ID:        1,
			Location:  strPtr("Baner, Pune"),
			BudgetMin: &budgetMin,
			BudgetMax: &budgetMax,
		}

		storage := &fakeProjectStorage{getByIDResult: refWithBudget, candidates: []domain.Project{hidden}}
		uc := NewFindSimilarProjectsUseCase(storage, newFakeUserRepo(viewer))
		claims := &domain.Claims{UserID: viewer.ID, Role: domain.RoleUser}

		ranked, err := uc.Execute(context.Background(), 1, claims)
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, 55, ranked[0].Score)
		assert.Nil(t, ranked[0].Project.BudgetMin)
		assert.Nil(t, ranked[0].Project.BudgetMax)
	})
}
