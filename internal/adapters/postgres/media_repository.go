package postgres

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MediaStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewMediaStorageAdapter(pool *pgxpool.Pool) *MediaStorageAdapter {
	return &MediaStorageAdapter{pool: pool}
}

const mediaColumns = `m.id, m.project_id, m.media_type, m.file_name, m.file_path, m.file_size,
	m.configuration, m.description, m.is_visible, m.uploaded_by, m.created_at`

func scanMedia(row rowScanner) (*domain.Media, error) {
	var m domain.Media
	err := row.Scan(
		&m.ID, &m.ProjectID, &m.MediaType, &m.FileName, &m.FilePath, &m.FileSize,
		&m.Configuration, &m.Description, &m.IsVisible, &m.UploadedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (a *MediaStorageAdapter) Create(ctx context.Context, media *domain.Media) (*domain.Media, error) {
	query := `INSERT INTO project_media (
			project_id, media_type, file_name, file_path, file_size,
			configuration, description, is_visible, uploaded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := a.pool.QueryRow(ctx, query,
		media.ProjectID, media.MediaType, media.FileName, media.FilePath, media.FileSize,
		media.Configuration, media.Description, media.IsVisible, media.UploadedBy,
	).Scan(&media.ID, &media.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert media record: %w", err)
	}
	return media, nil
}

func (a *MediaStorageAdapter) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	query := fmt.Sprintf("SELECT %s FROM project_media m WHERE m.id = $1", mediaColumns)

	media, err := scanMedia(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media by id: %w", err)
	}
	return media, nil
}

func (a *MediaStorageAdapter) SetVisibility(ctx context.Context, id int64, visible bool) (*domain.Media, error) {
	query := fmt.Sprintf(
		"UPDATE project_media AS m SET is_visible = $1 WHERE m.id = $2 RETURNING %s",
		mediaColumns,
	)

	media, err := scanMedia(a.pool.QueryRow(ctx, query, visible, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to update media visibility: %w", err)
	}
	return media, nil
}

func (a *MediaStorageAdapter) Delete(ctx context.Context, id int64) error {
	tag, err := a.pool.Exec(ctx, "DELETE FROM project_media WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete media record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}
