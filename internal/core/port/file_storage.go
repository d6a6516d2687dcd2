package port

import (
	"context"
	"io"
)

// FileStoragePort - хранилище файлов на диске.
type FileStoragePort interface {
	// Save сохраняет содержимое под уникальным именем,
	// возвращает имя сохранённого файла и его размер.
	Save(ctx context.Context, originalName string, content io.Reader) (storedName string, size int64, err error)
	// Open открывает сохранённый файл для чтения.
	Open(ctx context.Context, storedName string) (io.ReadSeekCloser, error)
	// Remove удаляет файл; отсутствие файла не считается ошибкой.
	Remove(ctx context.Context, storedName string) error
}
