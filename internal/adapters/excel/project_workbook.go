package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog-service/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// ProjectWorkbook - реализация WorkbookPort поверх excelize.
type ProjectWorkbook struct{}

func NewProjectWorkbook() *ProjectWorkbook {
	return &ProjectWorkbook{}
}

const sheetName = "Projects"

// Заголовки колонок книги; при разборе допускаются разумные синонимы.
var workbookHeaders = []string{
	"Project Name", "Developer Name", "Location", "Plot Size", "Total Towers",
	"Total Floors", "Possession", "Budget Min", "Budget Max",
	"Carpet Area Min", "Carpet Area Max", "Configurations",
	"Rate PSF Min", "Rate PSF Max", "Availability Status", "Notes",
	"Client Requirement Tags", "Google Maps Link",
}

// headerAliases сводит варианты написания заголовка к каноническому ключу.
var headerAliases = map[string]string{
	"project name":            "project_name",
	"project_name":            "project_name",
	"name":                    "project_name",
	"developer name":          "developer_name",
	"developer_name":          "developer_name",
	"developer":               "developer_name",
	"location":                "location",
	"plot size":               "plot_size",
	"plot_size":               "plot_size",
	"total towers":            "total_towers",
	"total_towers":            "total_towers",
	"total floors":            "total_floors",
	"total_floors":            "total_floors",
	"possession":              "possession",
	"budget min":              "budget_min",
	"budget_min":              "budget_min",
	"budget max":              "budget_max",
	"budget_max":              "budget_max",
	"carpet area min":         "carpet_area_min",
	"carpet_area_min":         "carpet_area_min",
	"carpet area max":         "carpet_area_max",
	"carpet_area_max":         "carpet_area_max",
	"configurations":          "configurations",
	"configuration":           "configurations",
	"rate psf min":            "rate_psf_min",
	"rate_psf_min":            "rate_psf_min",
	"rate psf max":            "rate_psf_max",
	"rate_psf_max":            "rate_psf_max",
	"availability status":     "availability_status",
	"availability_status":     "availability_status",
	"status":                  "availability_status",
	"notes":                   "notes",
	"client requirement tags": "client_requirement_tags",
	"client_requirement_tags": "client_requirement_tags",
	"client tags":             "client_requirement_tags",
	"google maps link":        "google_maps_link",
	"google_maps_link":        "google_maps_link",
}

// ParseRows читает первый лист книги. Ошибка отдельной строки не
// прерывает разбор: строка попадает в rowErrors и пропускается.
func (w *ProjectWorkbook) ParseRows(r io.Reader) ([]domain.ProjectRow, []domain.RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rawRows) < 2 {
		return nil, nil, fmt.Errorf("workbook has no data rows")
	}

	// Колонки сопоставляются по заголовкам, порядок не важен
	columns := map[string]int{}
	for i, header := range rawRows[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if canonical, ok := headerAliases[key]; ok {
			columns[canonical] = i
		}
	}
	if _, ok := columns["project_name"]; !ok {
		return nil, nil, fmt.Errorf("workbook is missing a project name column")
	}

	rows := make([]domain.ProjectRow, 0, len(rawRows)-1)
	rowErrors := make([]domain.RowError, 0)

	for i, raw := range rawRows[1:] {
		rowNumber := i + 2 // нумерация как в Excel, с учетом заголовка
		if isBlankRow(raw) {
			continue
		}

		row, err := parseRow(raw, columns)
		if err != nil {
			rowErrors = append(rowErrors, domain.RowError{Row: rowNumber, Error: err.Error()})
			continue
		}
		row.Row = rowNumber
		rows = append(rows, row)
	}

	return rows, rowErrors, nil
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellValue(cells []string, columns map[string]int, key string) string {
	idx, ok := columns[key]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func parseRow(cells []string, columns map[string]int) (domain.ProjectRow, error) {
	row := domain.ProjectRow{
		ProjectName: cellValue(cells, columns, "project_name"),
	}
	if row.ProjectName == "" {
		return row, fmt.Errorf("project name is empty")
	}

	row.DeveloperName = optionalString(cellValue(cells, columns, "developer_name"))
	row.Location = optionalString(cellValue(cells, columns, "location"))
	row.PlotSize = optionalString(cellValue(cells, columns, "plot_size"))
	row.Possession = optionalString(cellValue(cells, columns, "possession"))
	row.AvailabilityStatus = optionalString(cellValue(cells, columns, "availability_status"))
	row.Notes = optionalString(cellValue(cells, columns, "notes"))
	row.GoogleMapsLink = optionalString(cellValue(cells, columns, "google_maps_link"))
	row.Configurations = splitList(cellValue(cells, columns, "configurations"))
	row.ClientRequirementTags = splitList(cellValue(cells, columns, "client_requirement_tags"))

	var err error
	if row.TotalTowers, err = optionalInt(cellValue(cells, columns, "total_towers")); err != nil {
		return row, fmt.Errorf("total towers: %w", err)
	}
	if row.TotalFloors, err = optionalInt(cellValue(cells, columns, "total_floors")); err != nil {
		return row, fmt.Errorf("total floors: %w", err)
	}
	if row.BudgetMin, err = optionalFloat(cellValue(cells, columns, "budget_min")); err != nil {
		return row, fmt.Errorf("budget min: %w", err)
	}
	if row.BudgetMax, err = optionalFloat(cellValue(cells, columns, "budget_max")); err != nil {
		return row, fmt.Errorf("budget max: %w", err)
	}
	if row.CarpetAreaMin, err = optionalInt(cellValue(cells, columns, "carpet_area_min")); err != nil {
		return row, fmt.Errorf("carpet area min: %w", err)
	}
	if row.CarpetAreaMax, err = optionalInt(cellValue(cells, columns, "carpet_area_max")); err != nil {
		return row, fmt.Errorf("carpet area max: %w", err)
	}
	if row.RatePsfMin, err = optionalFloat(cellValue(cells, columns, "rate_psf_min")); err != nil {
		return row, fmt.Errorf("rate psf min: %w", err)
	}
	if row.RatePsfMax, err = optionalFloat(cellValue(cells, columns, "rate_psf_max")); err != nil {
		return row, fmt.Errorf("rate psf max: %w", err)
	}

	return row, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", value)
	}
	return &n, nil
}

func optionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	// Числа из выгрузок нередко приходят с разделителями тысяч
	value = strings.ReplaceAll(value, ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", value)
	}
	return &f, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

// WriteProjects формирует книгу со списком проектов.
func (w *ProjectWorkbook) WriteProjects(projects []domain.Project) (io.Reader, error) {
	f, sheet, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i, p := range projects {
		row := []interface{}{
			p.ProjectName,
			derefString(p.DeveloperName),
			derefString(p.Location),
			derefString(p.PlotSize),
			derefInt(p.TotalTowers),
			derefInt(p.TotalFloors),
			derefString(p.Possession),
			derefFloat(p.BudgetMin),
			derefFloat(p.BudgetMax),
			derefInt(p.CarpetAreaMin),
			derefInt(p.CarpetAreaMax),
			strings.Join(p.Configurations, ", "),
			derefFloat(p.RatePsfMin),
			derefFloat(p.RatePsfMax),
			derefString(p.AvailabilityStatus),
			derefString(p.Notes),
			strings.Join(p.ClientRequirementTags, ", "),
			derefString(p.GoogleMapsLink),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

// WriteTemplate формирует пустой шаблон для массовой загрузки.
func (w *ProjectWorkbook) WriteTemplate() (io.Reader, error) {
	f, sheet, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	example := []interface{}{
		"Skyline Heights", "Acme Developers", "Baner, Pune", "5 acres", 4, 22,
		"Dec 2027", 7500000, 12500000, 650, 1100, "2BHK, 3BHK",
		8500, 9800, "Under Construction", "", "premium, near-metro", "",
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, fmt.Errorf("failed to write example row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

func newWorkbook() (*excelize.File, string, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := make([]interface{}, len(workbookHeaders))
	for i, h := range workbookHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, "", fmt.Errorf("failed to write header row: %w", err)
	}
	return f, sheetName, nil
}

func derefString(s *string) interface{} {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}
