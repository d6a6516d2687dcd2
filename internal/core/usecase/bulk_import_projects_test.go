package usecase

import (
	"bytes"
	"context"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkImportProjects(t *testing.T) {
	actor := domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("unique rows are inserted", func(t *testing.T) {
		storage := &fakeProjectStorage{}
		workbook := &fakeWorkbook{rows: []domain.ProjectRow{
			{Row: 2, ProjectName: "Skyline Heights"},
			{Row: 3, ProjectName: "Palm Grove"},
		}}
		uc := NewBulkImportProjectsUseCase(storage, workbook, &fakeActivityLog{})

		result, err := uc.Execute(context.Background(), bytes.NewReader(nil), actor)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Success)
		assert.Equal(t, 0, result.Duplicates)
		assert.Equal(t, 0, result.Failed)
		require.Len(t, storage.createdAll, 2)
	})

	t.Run("duplicate name is renamed and still inserted", func(t *testing.T) {
		storage := &fakeProjectStorage{dedupNames: []string{"Tower View"}}
		workbook := &fakeWorkbook{rows: []domain.ProjectRow{
			{Row: 2, ProjectName: "Tower View"},
		}}
		uc := NewBulkImportProjectsUseCase(storage, workbook, &fakeActivityLog{})

		result, err := uc.Execute(context.Background(), bytes.NewReader(nil), actor)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Success)
		assert.Equal(t, 1, result.Duplicates)
		assert.Equal(t, 0, result.Failed)
		require.Len(t, storage.createdAll, 1)
		assert.Equal(t, "Tower View (Copy)", storage.createdAll[0].ProjectName)
	})

	t.Run("parse and create errors are merged with row numbers", func(t *testing.T) {
		storage := &fakeProjectStorage{failCreateFor: "Broken"}
		workbook := &fakeWorkbook{
			rows: []domain.ProjectRow{
				{Row: 2, ProjectName: "Good One"},
				{Row: 3, ProjectName: "Broken"},
			},
			rowErrors: []domain.RowError{
				{Row: 4, Error: "total towers: \"four\" is not a whole number"},
			},
		}
		uc := NewBulkImportProjectsUseCase(storage, workbook, &fakeActivityLog{})

		result, err := uc.Execute(context.Background(), bytes.NewReader(nil), actor)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Success)
		assert.Equal(t, 2, result.Failed)

		require.Len(t, result.Errors, 2)
		assert.Equal(t, 4, result.Errors[0].Row)
		assert.Equal(t, 3, result.Errors[1].Row)
		assert.Equal(t, "insert failed", result.Errors[1].Error)
	})

	t.Run("unreadable workbook is a validation error", func(t *testing.T) {
		workbook := &fakeWorkbook{parseErr: assert.AnError}
		uc := NewBulkImportProjectsUseCase(&fakeProjectStorage{}, workbook, &fakeActivityLog{})

		_, err := uc.Execute(context.Background(), bytes.NewReader(nil), actor)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("activity entry carries the counters", func(t *testing.T) {
		activity := &fakeActivityLog{}
		workbook := &fakeWorkbook{rows: []domain.ProjectRow{
			{Row: 2, ProjectName: "Skyline Heights"},
		}}
		uc := NewBulkImportProjectsUseCase(&fakeProjectStorage{}, workbook, activity)

		_, err := uc.Execute(context.Background(), bytes.NewReader(nil), actor)
		require.NoError(t, err)
		require.Len(t, activity.entries, 1)
		assert.Equal(t, "projects_imported", activity.entries[0].Action)
		assert.Equal(t, 1, activity.entries[0].Details["success"])
	})
}
