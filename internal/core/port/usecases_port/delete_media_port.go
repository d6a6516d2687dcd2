package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type DeleteMediaUseCase interface {
	Execute(ctx context.Context, id int64, actor domain.Claims) error
}
