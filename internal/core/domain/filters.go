package domain

// ProjectFilters - плоский набор опциональных фильтров поиска.
// Пустая строка / nil / пустой срез означают "фильтр не задан".
type ProjectFilters struct {
	ProjectName string

	// Застройщик: одиночное значение, AND-список (legacy) и OR-список.
	// Приоритет при одновременной передаче: OR-список > AND-список > одиночное.
	DeveloperName string
	DevelopersAnd []string
	DevelopersOr  []string

	// Локация: та же трёхуровневая схема, что и для застройщика.
	Location     string
	LocationsAnd []string
	LocationsOr  []string

	// Диапазонные фильтры с семантикой пересечения интервалов:
	// Min сравнивается с максимумом записи, Max - с минимумом.
	BudgetMin     *float64
	BudgetMax     *float64
	CarpetAreaMin *int
	CarpetAreaMax *int
	RatePsfMin    *float64
	RatePsfMax    *float64

	// Конфигурации: OR ("есть хотя бы одна") и AND ("есть все"); AND приоритетнее.
	Configurations    []string
	ConfigurationsAnd []string

	// Статус: одиночное точное совпадение или список допустимых (список приоритетнее).
	AvailabilityStatus   string
	AvailabilityStatuses []string

	// Теги клиентских требований, OR-семантика.
	ClientTags []string
}

// Pagination - постраничный вывод, страницы нумеруются с 1.
type Pagination struct {
	Page  int
	Limit int
}

// Offset вычисляет смещение для SQL-запроса.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
