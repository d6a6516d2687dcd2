package port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// ProjectStoragePort - хранилище проектов.
type ProjectStoragePort interface {
	// FindWithFilters выполняет поиск с фильтрами и пагинацией.
	// Для непривилегированных вызовов скрытые записи и скрытые медиа
	// отсекаются на уровне запроса.
	FindWithFilters(ctx context.Context, filters domain.ProjectFilters, pagination domain.Pagination, isAdmin bool) (*domain.PaginatedProjects, error)

	// GetByID возвращает проект с медиа. Возвращает domain.ErrProjectNotFound,
	// если записи нет или она скрыта от непривилегированного вызова.
	GetByID(ctx context.Context, id int64, isAdmin bool) (*domain.Project, error)

	// GetByIDs возвращает проекты по списку идентификаторов (для экспорта).
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Project, error)

	// ListAll возвращает все проекты (без медиа), с учётом видимости записи.
	ListAll(ctx context.Context, isAdmin bool) ([]domain.Project, error)

	// ListCandidates возвращает кандидатов для оценки похожести:
	// все проекты кроме excludeID, для непривилегированных - только видимые.
	ListCandidates(ctx context.Context, excludeID int64, isAdmin bool) ([]domain.Project, error)

	// FindNamesForDedup возвращает имена проектов, начинающиеся с candidate
	// (без учёта регистра), с тем же застройщиком и локацией (пустые значения
	// трактуются как пустая строка).
	FindNamesForDedup(ctx context.Context, candidate, developerName, location string) ([]string, error)

	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id int64, update domain.ProjectUpdate, isAdmin bool) (*domain.Project, error)

	// SetVisibility обновляет флаг записи и/или карту видимости полей.
	SetVisibility(ctx context.Context, id int64, recordVisible *bool, settings domain.VisibilitySettings) (*domain.Project, error)

	// Delete удаляет проект. Медиазаписи удаляются каскадно;
	// возвращаются пути их файлов для зачистки на диске.
	Delete(ctx context.Context, id int64) ([]string, error)
}
