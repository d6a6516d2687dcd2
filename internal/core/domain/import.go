package domain

import "github.com/google/uuid"

// ProjectRow - строгая схема строки массового импорта. Парсер книги Excel
// приводит ячейки к именованным опциональным полям; незаполненные значения
// добиваются дефолтами уже в use case.
type ProjectRow struct {
	// Row - номер исходной строки в книге (как в Excel, заголовок - строка 1).
	Row int

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
}

// ToProject превращает строку импорта в проект с дефолтами.
func (r ProjectRow) ToProject(createdBy uuid.UUID) *Project {
	p := NewProject(r.ProjectName, createdBy)
	p.DeveloperName = r.DeveloperName
	p.Location = r.Location
	p.PlotSize = r.PlotSize
	p.TotalTowers = r.TotalTowers
	p.TotalFloors = r.TotalFloors
	p.Possession = r.Possession
	p.BudgetMin = r.BudgetMin
	p.BudgetMax = r.BudgetMax
	p.CarpetAreaMin = r.CarpetAreaMin
	p.CarpetAreaMax = r.CarpetAreaMax
	p.RatePsfMin = r.RatePsfMin
	p.RatePsfMax = r.RatePsfMax
	p.Notes = r.Notes
	p.GoogleMapsLink = r.GoogleMapsLink
	if len(r.Configurations) > 0 {
		p.Configurations = r.Configurations
	}
	if len(r.ClientRequirementTags) > 0 {
		p.ClientRequirementTags = r.ClientRequirementTags
	}
	if r.AvailabilityStatus != nil {
		p.AvailabilityStatus = r.AvailabilityStatus
	}
	return p
}

// RowError - ошибка обработки конкретной строки импорта.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BulkImportResult - итог массового импорта: счётчики и список ошибок по строкам.
// Ошибка одной строки не прерывает обработку остальных.
type BulkImportResult struct {
	Success    int        `json:"success"`
	Duplicates int        `json:"duplicates"`
	Failed     int        `json:"failed"`
	Errors     []RowError `json:"errors"`
}
