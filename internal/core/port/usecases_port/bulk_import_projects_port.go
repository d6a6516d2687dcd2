package usecases_port

import (
	"context"
	"io"

	"catalog-service/internal/core/domain"
)

type BulkImportProjectsUseCase interface {
	Execute(ctx context.Context, workbook io.Reader, actor domain.Claims) (*domain.BulkImportResult, error)
}
