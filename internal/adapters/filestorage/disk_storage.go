package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStorage - реализация FileStoragePort поверх локального каталога.
// Имена файлов генерируются заново, оригинальное имя живет только в базе.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

// Save пишет содержимое под новым uuid-именем с расширением оригинала.
func (s *DiskStorage) Save(ctx context.Context, originalName string, content io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, storedName))
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	return storedName, size, nil
}

func (s *DiskStorage) Open(ctx context.Context, storedName string) (io.ReadSeekCloser, error) {
	// Имя нормализуется до базового: выход за пределы каталога невозможен.
	clean := filepath.Base(storedName)
	f, err := os.Open(filepath.Join(s.dir, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove удаляет файл; отсутствие файла не считается ошибкой.
func (s *DiskStorage) Remove(ctx context.Context, storedName string) error {
	clean := filepath.Base(storedName)
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
