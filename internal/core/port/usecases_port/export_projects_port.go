package usecases_port

import (
	"context"
	"io"
)

type ExportProjectsUseCase interface {
	Execute(ctx context.Context, ids []int64) (io.Reader, error)
	Template(ctx context.Context) (io.Reader, error)
}
