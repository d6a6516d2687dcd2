package postgres

import (
	"fmt"
	"strings"

	"catalog-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder(isAdmin bool) *queryBuilder {
	conditions := make([]string, 0, 4)
	// Скрытые записи существуют только для админа.
	if !isAdmin {
		conditions = append(conditions, "p.is_visible = true")
	}
	return &queryBuilder{
		argId:      1,
		conditions: conditions,
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addTextOrGroup: хотя бы одно из значений входит в поле как подстрока.
func (qb *queryBuilder) addTextOrGroup(fieldName string, values []string) {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", fieldName, qb.argId))
		qb.args = append(qb.args, "%"+v+"%")
		qb.argId++
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
}

// addTextAndGroup: каждое значение входит в поле как подстрока.
func (qb *queryBuilder) addTextAndGroup(fieldName string, values []string) {
	for _, v := range values {
		qb.addCondition("%s ILIKE $%d", fieldName, "%"+v+"%")
	}
}

// AddFloatOverlap строит условие пересечения интервалов: минимум запроса
// сравнивается с максимумом записи, максимум запроса - с минимумом записи.
func (qb *queryBuilder) AddFloatOverlap(minField, maxField string, min, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", maxField, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", minField, *max)
	}
}

func (qb *queryBuilder) AddIntOverlap(minField, maxField string, min, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", maxField, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", minField, *max)
	}
}

// build создает финальную часть запроса
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// cleanList отбрасывает пустые после обрезки пробелов значения.
// Список из одних пропусков не добавляет условий вовсе.
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// applyProjectFilters - главный метод, который разбирает фильтры и строит запрос.
// Для текстовых полей действует приоритет: OR-список > AND-список > одиночное
// значение; для конфигураций AND-список (вхождение) побеждает OR-список
// (пересечение); список статусов побеждает одиночный статус.
func applyProjectFilters(filters domain.ProjectFilters, isAdmin bool) (string, []interface{}) {
	qb := newQueryBuilder(isAdmin)

	// Поиск по имени проекта (подстрока)
	if name := strings.TrimSpace(filters.ProjectName); name != "" {
		qb.addCondition("%s ILIKE $%d", "p.project_name", "%"+name+"%")
	}

	// Застройщик
	if ors := cleanList(filters.DevelopersOr); len(ors) > 0 {
		qb.addTextOrGroup("p.developer_name", ors)
	} else if ands := cleanList(filters.DevelopersAnd); len(ands) > 0 {
		qb.addTextAndGroup("p.developer_name", ands)
	} else if v := strings.TrimSpace(filters.DeveloperName); v != "" {
		qb.addCondition("%s ILIKE $%d", "p.developer_name", "%"+v+"%")
	}

	// Локация
	if ors := cleanList(filters.LocationsOr); len(ors) > 0 {
		qb.addTextOrGroup("p.location", ors)
	} else if ands := cleanList(filters.LocationsAnd); len(ands) > 0 {
		qb.addTextAndGroup("p.location", ands)
	} else if v := strings.TrimSpace(filters.Location); v != "" {
		qb.addCondition("%s ILIKE $%d", "p.location", "%"+v+"%")
	}

	// Числовые диапазоны ищутся по пересечению с диапазоном записи
	qb.AddFloatOverlap("p.budget_min", "p.budget_max", filters.BudgetMin, filters.BudgetMax)
	qb.AddIntOverlap("p.carpet_area_min", "p.carpet_area_max", filters.CarpetAreaMin, filters.CarpetAreaMax)
	qb.AddFloatOverlap("p.rate_psf_min", "p.rate_psf_max", filters.RatePsfMin, filters.RatePsfMax)

	// Конфигурации: @> требует все значения, && - хотя бы одно
	if ands := cleanList(filters.ConfigurationsAnd); len(ands) > 0 {
		qb.addCondition("%s @> $%d", "p.configurations", ands)
	} else if ors := cleanList(filters.Configurations); len(ors) > 0 {
		qb.addCondition("%s && $%d", "p.configurations", ors)
	}

	// Статус доступности
	if list := cleanList(filters.AvailabilityStatuses); len(list) > 0 {
		qb.addCondition("%s = ANY($%d)", "p.availability_status", list)
	} else if v := strings.TrimSpace(filters.AvailabilityStatus); v != "" {
		qb.addCondition("%s = $%d", "p.availability_status", v)
	}

	// Клиентские теги: достаточно пересечения
	if tags := cleanList(filters.ClientTags); len(tags) > 0 {
		qb.addCondition("%s && $%d", "p.client_requirement_tags", tags)
	}

	return qb.build()
}
