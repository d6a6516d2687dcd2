package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type BulkImportProjectsUseCase struct {
	storage  port.ProjectStoragePort
	workbook port.WorkbookPort
	activity port.ActivityLogPort
}

func NewBulkImportProjectsUseCase(storage port.ProjectStoragePort, workbook port.WorkbookPort, activity port.ActivityLogPort) *BulkImportProjectsUseCase {
	return &BulkImportProjectsUseCase{storage: storage, workbook: workbook, activity: activity}
}

// Execute разбирает книгу xlsx и создает проекты построчно. Ошибка строки
// попадает в отчет и не прерывает импорт. Конфликт имени (с тем же
// застройщиком и локацией) разрешается тем же путем, что и при ручном
// создании: строка вставляется под именем с маркером копии и учитывается
// одновременно как успех и как дубликат.
func (uc *BulkImportProjectsUseCase) Execute(ctx context.Context, wb io.Reader, actor domain.Claims) (*domain.BulkImportResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "BulkImportProjects",
	})

	ucLogger.Info("Use case started", nil)

	rows, rowErrors, err := uc.workbook.ParseRows(wb)
	if err != nil {
		ucLogger.Error("Failed to parse workbook", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	result := &domain.BulkImportResult{
		Failed: len(rowErrors),
		Errors: rowErrors,
	}

	for _, row := range rows {
		row.ProjectName = strings.TrimSpace(row.ProjectName)
		if row.ProjectName == "" {
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{Row: row.Row, Error: "project_name is required"})
			continue
		}

		developer := derefOrEmpty(row.DeveloperName)
		location := derefOrEmpty(row.Location)
		existingNames, err := uc.storage.FindNamesForDedup(ctx, row.ProjectName, developer, location)
		if err != nil {
			ucLogger.Error("Failed to load names for duplicate check", err, nil)
			return nil, err
		}

		resolvedName := domain.ResolveUniqueName(row.ProjectName, existingNames)
		if resolvedName != row.ProjectName {
			ucLogger.Info("Duplicate name resolved", port.Fields{
				"row":           row.Row,
				"resolved_name": resolvedName,
			})
			result.Duplicates++
			row.ProjectName = resolvedName
		}

		project := row.ToProject(actor.UserID)
		if _, err := uc.storage.Create(ctx, project); err != nil {
			ucLogger.Warn("Failed to create project from imported row", port.Fields{
				"project_name": row.ProjectName,
				"error":        err.Error(),
			})
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{Row: row.Row, Error: err.Error()})
			continue
		}
		result.Success++
	}

	recordActivity(ctx, uc.activity, ucLogger, domain.ActivityEntry{
		UserID:     actor.UserID,
		Action:     "projects_imported",
		EntityType: "project",
		Details: map[string]any{
			"success":    result.Success,
			"duplicates": result.Duplicates,
			"failed":     result.Failed,
		},
	})

	ucLogger.Info("Use case finished successfully", port.Fields{
		"success":    result.Success,
		"duplicates": result.Duplicates,
		"failed":     result.Failed,
	})

	return result, nil
}
