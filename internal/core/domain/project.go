package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project - основная доменная сущность: проект недвижимости из каталога.
// Опциональные поля - указатели, чтобы отличать "не задано" от нулевого значения
// (и чтобы наложение видимости могло выставить явный null).
type Project struct {
	ID                    int64
	ProjectName           string
	DeveloperName         *string
	Location              *string
	PlotSize              *string
	TotalTowers           *int
	TotalFloors           *int
	Possession            *string
	BudgetMin             *float64
	BudgetMax             *float64
	CarpetAreaMin         *int
	CarpetAreaMax         *int
	Configurations        []string
	RatePsfMin            *float64
	RatePsfMax            *float64
	AvailabilityStatus    *string
	Notes                 *string
	ClientRequirementTags []string
	GoogleMapsLink        *string

	IsVisible          bool
	VisibilitySettings VisibilitySettings

	// Дополнительные атрибуты (слоты 1..13), редактируются только админом.
	Attributes map[int]string

	CreatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	// Привязанные медиафайлы (заполняются при выборке).
	Media []Media
}

// AttributeSlotCount - количество слотов дополнительных атрибутов.
const AttributeSlotCount = 13

// DefaultAvailabilityStatus подставляется, если статус не указан при создании.
const DefaultAvailabilityStatus = "Ready"

// NewProject заполняет значения по умолчанию для создаваемого проекта.
func NewProject(name string, createdBy uuid.UUID) *Project {
	status := DefaultAvailabilityStatus
	now := time.Now().UTC()
	return &Project{
		ProjectName:           name,
		Configurations:        []string{},
		ClientRequirementTags: []string{},
		AvailabilityStatus:    &status,
		IsVisible:             true,
		VisibilitySettings:    VisibilitySettings{},
		Attributes:            map[int]string{},
		CreatedBy:             &createdBy,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// ProjectUpdate - частичное обновление проекта. nil-поле означает "не трогать".
type ProjectUpdate struct {
	ProjectName           *string
	DeveloperName         *string
	Location              *string
	PlotSize              *string
	TotalTowers           *int
	TotalFloors           *int
	Possession            *string
	BudgetMin             *float64
	BudgetMax             *float64
	CarpetAreaMin         *int
	CarpetAreaMax         *int
	Configurations        []string
	RatePsfMin            *float64
	RatePsfMax            *float64
	AvailabilityStatus    *string
	Notes                 *string
	ClientRequirementTags []string
	GoogleMapsLink        *string
	IsVisible             *bool
	VisibilitySettings    VisibilitySettings

	// Применяются только если инициатор - админ.
	Attributes map[int]string
}

// IsEmpty - true, если в обновлении нет ни одного поля.
func (u ProjectUpdate) IsEmpty(isAdmin bool) bool {
	if u.ProjectName != nil || u.DeveloperName != nil || u.Location != nil ||
		u.PlotSize != nil || u.TotalTowers != nil || u.TotalFloors != nil ||
		u.Possession != nil || u.BudgetMin != nil || u.BudgetMax != nil ||
		u.CarpetAreaMin != nil || u.CarpetAreaMax != nil || u.Configurations != nil ||
		u.RatePsfMin != nil || u.RatePsfMax != nil || u.AvailabilityStatus != nil ||
		u.Notes != nil || u.ClientRequirementTags != nil || u.GoogleMapsLink != nil ||
		u.IsVisible != nil || u.VisibilitySettings != nil {
		return false
	}
	if isAdmin && len(u.Attributes) > 0 {
		return false
	}
	return true
}

// PaginatedProjects - страница результатов поиска вместе с общим количеством.
type PaginatedProjects struct {
	Projects     []Project
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}
