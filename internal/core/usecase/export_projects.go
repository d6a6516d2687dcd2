package usecase

import (
	"context"
	"io"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"
)

type ExportProjectsUseCase struct {
	storage  port.ProjectStoragePort
	workbook port.WorkbookPort
}

func NewExportProjectsUseCase(storage port.ProjectStoragePort, workbook port.WorkbookPort) *ExportProjectsUseCase {
	return &ExportProjectsUseCase{storage: storage, workbook: workbook}
}

// Execute выгружает проекты в книгу xlsx. Пустой список идентификаторов
// означает "выгрузить все".
func (uc *ExportProjectsUseCase) Execute(ctx context.Context, ids []int64) (io.Reader, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ExportProjects",
		"ids_count": len(ids),
	})

	ucLogger.Info("Use case started", nil)

	if len(ids) > 0 {
		list, err := uc.storage.GetByIDs(ctx, ids)
		if err != nil {
			ucLogger.Error("Storage failed to load projects by ids", err, nil)
			return nil, err
		}
		ucLogger.Info("Use case finished successfully", port.Fields{"exported": len(list)})
		return uc.workbook.WriteProjects(list)
	}

	list, err := uc.storage.ListAll(ctx, true)
	if err != nil {
		ucLogger.Error("Storage failed to load all projects", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"exported": len(list)})
	return uc.workbook.WriteProjects(list)
}

// Template формирует пустой шаблон для массовой загрузки.
func (uc *ExportProjectsUseCase) Template(ctx context.Context) (io.Reader, error) {
	return uc.workbook.WriteTemplate()
}
