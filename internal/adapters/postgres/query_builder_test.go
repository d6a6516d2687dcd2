package postgres

import (
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func TestApplyProjectFilters_Empty(t *testing.T) {
	where, args := applyProjectFilters(domain.ProjectFilters{}, true)

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestApplyProjectFilters_NonAdminVisibilitySeed(t *testing.T) {
	where, args := applyProjectFilters(domain.ProjectFilters{}, false)

	assert.Equal(t, "WHERE p.is_visible = true", where)
	assert.Empty(t, args)
}

func TestApplyProjectFilters_NameSubstring(t *testing.T) {
	where, args := applyProjectFilters(domain.ProjectFilters{ProjectName: "  Skyline "}, true)

	assert.Equal(t, "WHERE p.project_name ILIKE $1", where)
	assert.Equal(t, []interface{}{"%Skyline%"}, args)
}

func TestApplyProjectFilters_DeveloperPrecedence(t *testing.T) {
	t.Run("or list wins over and list and single", func(t *testing.T) {
		filters := domain.ProjectFilters{
			DeveloperName: "Lodha",
			DevelopersAnd: []string{"Godrej"},
			DevelopersOr:  []string{"Tata", "Birla"},
		}
		where, args := applyProjectFilters(filters, true)

		assert.Equal(t, "WHERE (p.developer_name ILIKE $1 OR p.developer_name ILIKE $2)", where)
		assert.Equal(t, []interface{}{"%Tata%", "%Birla%"}, args)
	})

	t.Run("and list wins over single", func(t *testing.T) {
		filters := domain.ProjectFilters{
			DeveloperName: "Lodha",
			DevelopersAnd: []string{"Godrej", "Properties"},
		}
		where, args := applyProjectFilters(filters, true)

		assert.Equal(t, "WHERE p.developer_name ILIKE $1 AND p.developer_name ILIKE $2", where)
		assert.Equal(t, []interface{}{"%Godrej%", "%Properties%"}, args)
	})

	t.Run("single value", func(t *testing.T) {
		where, args := applyProjectFilters(domain.ProjectFilters{DeveloperName: "Lodha"}, true)

		assert.Equal(t, "WHERE p.developer_name ILIKE $1", where)
		assert.Equal(t, []interface{}{"%Lodha%"}, args)
	})

	t.Run("blank list entries fall through", func(t *testing.T) {
		filters := domain.ProjectFilters{
			DeveloperName: "Lodha",
			DevelopersOr:  []string{"  ", ""},
		}
		where, args := applyProjectFilters(filters, true)

		assert.Equal(t, "WHERE p.developer_name ILIKE $1", where)
		assert.Equal(t, []interface{}{"%Lodha%"}, args)
	})
}

func TestApplyProjectFilters_RangeOverlap(t *testing.T) {
	// Запрос 800-1200 против записи 1000-1500: интервалы пересекаются,
	// минимум запроса сравнивается с максимумом записи и наоборот.
	filters := domain.ProjectFilters{
		CarpetAreaMin: iptr(800),
		CarpetAreaMax: iptr(1200),
	}
	where, args := applyProjectFilters(filters, true)

	assert.Equal(t, "WHERE p.carpet_area_max >= $1 AND p.carpet_area_min <= $2", where)
	assert.Equal(t, []interface{}{800, 1200}, args)
}

func TestApplyProjectFilters_BudgetOnlyMin(t *testing.T) {
	where, args := applyProjectFilters(domain.ProjectFilters{BudgetMin: fptr(5000000)}, true)

	assert.Equal(t, "WHERE p.budget_max >= $1", where)
	assert.Equal(t, []interface{}{5000000.0}, args)
}

func TestApplyProjectFilters_Configurations(t *testing.T) {
	t.Run("or uses array overlap", func(t *testing.T) {
		where, args := applyProjectFilters(domain.ProjectFilters{
			Configurations: []string{"2BHK", "3BHK"},
		}, true)

		assert.Equal(t, "WHERE p.configurations && $1", where)
		require.Len(t, args, 1)
		assert.Equal(t, []string{"2BHK", "3BHK"}, args[0])
	})

	t.Run("and list uses containment and wins", func(t *testing.T) {
		where, args := applyProjectFilters(domain.ProjectFilters{
			Configurations:    []string{"1BHK"},
			ConfigurationsAnd: []string{"2BHK", "3BHK"},
		}, true)

		assert.Equal(t, "WHERE p.configurations @> $1", where)
		require.Len(t, args, 1)
		assert.Equal(t, []string{"2BHK", "3BHK"}, args[0])
	})
}

func TestApplyProjectFilters_AvailabilityStatus(t *testing.T) {
	t.Run("status list wins over single", func(t *testing.T) {
		where, args := applyProjectFilters(domain.ProjectFilters{
			AvailabilityStatus:   "Ready",
			AvailabilityStatuses: []string{"Ready", "Under Construction"},
		}, true)

		assert.Equal(t, "WHERE p.availability_status = ANY($1)", where)
		require.Len(t, args, 1)
	})

	t.Run("single exact match", func(t *testing.T) {
		where, args := applyProjectFilters(domain.ProjectFilters{AvailabilityStatus: "Ready"}, true)

		assert.Equal(t, "WHERE p.availability_status = $1", where)
		assert.Equal(t, []interface{}{"Ready"}, args)
	})
}

func TestApplyProjectFilters_ClientTags(t *testing.T) {
	where, args := applyProjectFilters(domain.ProjectFilters{
		ClientTags: []string{"sea-view"},
	}, true)

	assert.Equal(t, "WHERE p.client_requirement_tags && $1", where)
	require.Len(t, args, 1)
}

func TestApplyProjectFilters_ArgNumbering(t *testing.T) {
	filters := domain.ProjectFilters{
		ProjectName: "Skyline",
		Location:    "Pune",
		BudgetMin:   fptr(1000000),
		ClientTags:  []string{"gym"},
	}
	where, args := applyProjectFilters(filters, false)

	expected := "WHERE p.is_visible = true AND p.project_name ILIKE $1 AND p.location ILIKE $2 AND p.budget_max >= $3 AND p.client_requirement_tags && $4"
	assert.Equal(t, expected, where)
	assert.Len(t, args, 4)
}
