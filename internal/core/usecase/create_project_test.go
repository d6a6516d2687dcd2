package usecase

import (
	"context"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	actor := domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("empty name is rejected", func(t *testing.T) {
		uc := NewCreateProjectUseCase(&fakeProjectStorage{}, &fakeActivityLog{})

		_, err := uc.Execute(context.Background(), &domain.Project{ProjectName: "   "}, actor)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unique name is kept as is", func(t *testing.T) {
		storage := &fakeProjectStorage{}
		uc := NewCreateProjectUseCase(storage, &fakeActivityLog{})

		created, err := uc.Execute(context.Background(), domain.NewProject("Tower View", actor.UserID), actor)
		require.NoError(t, err)
		assert.Equal(t, "Tower View", created.ProjectName)
	})

	t.Run("duplicate name gets a copy marker", func(t *testing.T) {
		storage := &fakeProjectStorage{dedupNames: []string{"Tower View"}}
		uc := NewCreateProjectUseCase(storage, &fakeActivityLog{})

		created, err := uc.Execute(context.Background(), domain.NewProject("Tower View", actor.UserID), actor)
		require.NoError(t, err)
		assert.Equal(t, "Tower View (Copy)", created.ProjectName)
	})

	t.Run("activity entry is recorded", func(t *testing.T) {
		activity := &fakeActivityLog{}
		uc := NewCreateProjectUseCase(&fakeProjectStorage{}, activity)

		_, err := uc.Execute(context.Background(), domain.NewProject("Tower View", actor.UserID), actor)
		require.NoError(t, err)
		require.Len(t, activity.entries, 1)
		assert.Equal(t, "project_created", activity.entries[0].Action)
		assert.Equal(t, actor.UserID, activity.entries[0].UserID)
	})
}
