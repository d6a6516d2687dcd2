package port

import (
	"io"

	"catalog-service/internal/core/domain"
)

// WorkbookPort - чтение и запись xlsx-книг с проектами.
type WorkbookPort interface {
	// ParseRows читает первый лист книги и возвращает строки проектов.
	// Ошибки отдельных строк попадают в rowErrors, не прерывая разбор.
	ParseRows(r io.Reader) (rows []domain.ProjectRow, rowErrors []domain.RowError, err error)
	// WriteProjects формирует книгу со списком проектов.
	WriteProjects(projects []domain.Project) (io.Reader, error)
	// WriteTemplate формирует пустой шаблон для массовой загрузки.
	WriteTemplate() (io.Reader, error)
}
