package domain

import (
	"fmt"
	"strconv"
)

// VisibilityField - имя скрываемого поля проекта. Закрытый перечислимый набор:
// произвольные ключи на границе записи отклоняются (см. ValidateVisibilitySettings).
type VisibilityField string

const (
	FieldDeveloperName      VisibilityField = "developer_name"
	FieldLocation           VisibilityField = "location"
	FieldPlotSize           VisibilityField = "plot_size"
	FieldTotalTowers        VisibilityField = "total_towers"
	FieldTotalFloors        VisibilityField = "total_floors"
	FieldPossession         VisibilityField = "possession"
	FieldBudget             VisibilityField = "budget"
	FieldCarpetArea         VisibilityField = "carpet_area"
	FieldConfigurations     VisibilityField = "configurations"
	FieldRatePsf            VisibilityField = "rate_psf"
	FieldAvailabilityStatus VisibilityField = "availability_status"
	FieldNotes              VisibilityField = "notes"
	FieldClientTags         VisibilityField = "client_requirement_tags"
	FieldGoogleMapsLink     VisibilityField = "google_maps_link"
)

// AllVisibilityFields - полный набор допустимых ключей.
var AllVisibilityFields = []VisibilityField{
	FieldDeveloperName, FieldLocation, FieldPlotSize, FieldTotalTowers,
	FieldTotalFloors, FieldPossession, FieldBudget, FieldCarpetArea,
	FieldConfigurations, FieldRatePsf, FieldAvailabilityStatus, FieldNotes,
	FieldClientTags, FieldGoogleMapsLink,
}

// VisibilitySettings - карта "поле -> видимо ли оно непривилегированным
// пользователям". Отсутствующий ключ означает "видимо".
type VisibilitySettings map[VisibilityField]bool

// ValidateVisibilitySettings проверяет карту на границе записи: только
// ключи из закрытого перечня.
func ValidateVisibilitySettings(settings map[string]bool) (VisibilitySettings, error) {
	allowed := make(map[VisibilityField]struct{}, len(AllVisibilityFields))
	for _, f := range AllVisibilityFields {
		allowed[f] = struct{}{}
	}

	result := make(VisibilitySettings, len(settings))
	for key, visible := range settings {
		field := VisibilityField(key)
		if _, ok := allowed[field]; !ok {
			return nil, fmt.Errorf("%w: unknown visibility field %q", ErrValidation, key)
		}
		result[field] = visible
	}
	return result, nil
}

// ApplyVisibility накладывает настройки видимости на проект.
// Для админа запись возвращается как есть; для остальных каждое поле,
// явно помеченное false, заменяется на null-значение (а не опускается).
// Видимость самой записи (IsVisible) обеспечивается выше - на уровне запросов.
func (p *Project) ApplyVisibility(isAdmin bool) {
	if isAdmin || len(p.VisibilitySettings) == 0 {
		return
	}

	for field, visible := range p.VisibilitySettings {
		if visible {
			continue
		}
		switch field {
		case FieldDeveloperName:
			p.DeveloperName = nil
		case FieldLocation:
			p.Location = nil
		case FieldPlotSize:
			p.PlotSize = nil
		case FieldTotalTowers:
			p.TotalTowers = nil
		case FieldTotalFloors:
			p.TotalFloors = nil
		case FieldPossession:
			p.Possession = nil
		case FieldBudget:
			p.BudgetMin = nil
			p.BudgetMax = nil
		case FieldCarpetArea:
			p.CarpetAreaMin = nil
			p.CarpetAreaMax = nil
		case FieldConfigurations:
			p.Configurations = nil
		case FieldRatePsf:
			p.RatePsfMin = nil
			p.RatePsfMax = nil
		case FieldAvailabilityStatus:
			p.AvailabilityStatus = nil
		case FieldNotes:
			p.Notes = nil
		case FieldClientTags:
			p.ClientRequirementTags = nil
		case FieldGoogleMapsLink:
			p.GoogleMapsLink = nil
		}
	}
}

// AttributeVisibility - разрешения КОНКРЕТНОГО пользователя на просмотр
// слотов дополнительных атрибутов (1..13). Это отдельная ось от
// VisibilitySettings: она описывает зрителя, а не запись.
// Отсутствующий слот считается разрешённым.
type AttributeVisibility map[int]bool

// ValidateAttributeVisibility проверяет карту слотов на границе записи.
func ValidateAttributeVisibility(raw map[string]bool) (AttributeVisibility, error) {
	result := make(AttributeVisibility, len(raw))
	for key, visible := range raw {
		slot, err := strconv.Atoi(key)
		if err != nil || slot < 1 || slot > AttributeSlotCount {
			return nil, fmt.Errorf("%w: invalid attribute slot %q", ErrValidation, key)
		}
		result[slot] = visible
	}
	return result, nil
}

// FilterAttributes убирает из проекта слоты атрибутов, запрещённые
// настройками зрителя.
func (p *Project) FilterAttributes(viewer AttributeVisibility) {
	if len(p.Attributes) == 0 {
		return
	}
	for slot := range p.Attributes {
		if visible, ok := viewer[slot]; ok && !visible {
			delete(p.Attributes, slot)
		}
	}
}
