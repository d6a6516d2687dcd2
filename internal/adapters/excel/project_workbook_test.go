package excel

import (
	"bytes"
	"io"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseRows(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Project Name", "Developer", "Location", "Budget Min", "Budget Max", "Configurations", "Total Towers"},
		{"Skyline Heights", "Acme", "Baner, Pune", "7,500,000", 12500000, "2BHK, 3BHK", 4},
		{"", "", "", "", "", "", ""},
		{"Palm Grove", "", "", "", "", "", ""},
	})

	w := NewProjectWorkbook()
	rows, rowErrors, err := w.ParseRows(reader)
	require.NoError(t, err)
	require.Empty(t, rowErrors)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Skyline Heights", first.ProjectName)
	assert.Equal(t, "Acme", *first.DeveloperName)
	assert.Equal(t, "Baner, Pune", *first.Location)
	assert.Equal(t, 7500000.0, *first.BudgetMin)
	assert.Equal(t, 12500000.0, *first.BudgetMax)
	assert.Equal(t, []string{"2BHK", "3BHK"}, first.Configurations)
	assert.Equal(t, 4, *first.TotalTowers)

	second := rows[1]
	assert.Equal(t, "Palm Grove", second.ProjectName)
	assert.Nil(t, second.DeveloperName)
	assert.Nil(t, second.BudgetMin)
}

func TestParseRows_RowErrorsDoNotStopParsing(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Project Name", "Total Towers"},
		{"Good One", 3},
		{"Bad Towers", "four"},
		{"", 5},
		{"Good Two", ""},
	})

	w := NewProjectWorkbook()
	rows, rowErrors, err := w.ParseRows(reader)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Good One", rows[0].ProjectName)
	assert.Equal(t, "Good Two", rows[1].ProjectName)

	// Номера строк как в Excel: заголовок - строка 1
	require.Len(t, rowErrors, 2)
	assert.Equal(t, 3, rowErrors[0].Row)
	assert.Contains(t, rowErrors[0].Error, "total towers")
	assert.Equal(t, 4, rowErrors[1].Row)
	assert.Contains(t, rowErrors[1].Error, "project name is empty")
}

func TestParseRows_MissingNameColumn(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Developer", "Location"},
		{"Acme", "Pune"},
	})

	w := NewProjectWorkbook()
	_, _, err := w.ParseRows(reader)
	assert.ErrorContains(t, err, "project name column")
}

func TestWriteProjects_RoundTrip(t *testing.T) {
	dev := "Acme"
	budgetMin := 7500000.0
	projects := []domain.Project{
		{
			ProjectName:    "Skyline Heights",
			DeveloperName:  &dev,
			BudgetMin:      &budgetMin,
			Configurations: []string{"2BHK", "3BHK"},
		},
	}

	w := NewProjectWorkbook()
	reader, err := w.WriteProjects(projects)
	require.NoError(t, err)

	rows, rowErrors, err := w.ParseRows(reader)
	require.NoError(t, err)
	require.Empty(t, rowErrors)
	require.Len(t, rows, 1)
	assert.Equal(t, "Skyline Heights", rows[0].ProjectName)
	assert.Equal(t, "Acme", *rows[0].DeveloperName)
	assert.Equal(t, 7500000.0, *rows[0].BudgetMin)
	assert.Equal(t, []string{"2BHK", "3BHK"}, rows[0].Configurations)
}

func TestWriteTemplate(t *testing.T) {
	w := NewProjectWorkbook()
	reader, err := w.WriteTemplate()
	require.NoError(t, err)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, "Project Name", rows[0][0])
	assert.Equal(t, "Skyline Heights", rows[1][0])
}
