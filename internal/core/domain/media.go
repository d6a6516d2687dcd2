package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// MediaType - тип медиафайла проекта.
type MediaType string

const (
	MediaFloorPlan MediaType = "floor_plan"
	MediaVideo     MediaType = "video"
	MediaBrochure  MediaType = "brochure"
	MediaImage     MediaType = "image"
	MediaDocument  MediaType = "pdf"
)

// ValidMediaType - проверка типа на границе записи.
func ValidMediaType(t string) bool {
	switch MediaType(t) {
	case MediaFloorPlan, MediaVideo, MediaBrochure, MediaImage, MediaDocument:
		return true
	}
	return false
}

// Media - медиафайл, принадлежащий ровно одному проекту.
// Удаляется каскадно вместе с проектом.
type Media struct {
	ID            int64
	ProjectID     int64
	MediaType     MediaType
	FileName      string // оригинальное имя, присланное клиентом
	FilePath      string // сгенерированное имя в файловом хранилище
	FileSize      int64
	Configuration *string
	Description   *string
	IsVisible     bool
	UploadedBy    *uuid.UUID
	CreatedAt     time.Time
}

// MediaUpload - входные данные загрузки медиафайла.
type MediaUpload struct {
	ProjectID     int64
	MediaType     string
	FileName      string
	Configuration *string
	Description   *string
	Content       io.Reader
}
