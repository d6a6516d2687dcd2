package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int          { return &i }

func TestSimilarityScore_LocationHead(t *testing.T) {
	ref := &Project{Location: strPtr("Baner, Pune")}

	match := &Project{Location: strPtr("baner west, pune")}
	assert.Equal(t, 30, SimilarityScore(ref, match))

	noMatch := &Project{Location: strPtr("Wakad, Pune")}
	assert.Equal(t, 0, SimilarityScore(ref, noMatch))

	nilLoc := &Project{}
	assert.Equal(t, 0, SimilarityScore(ref, nilLoc))
}

func TestSimilarityScore_Configurations(t *testing.T) {
	ref := &Project{Configurations: []string{"2BHK", "3BHK"}}

	assert.Equal(t, 25, SimilarityScore(ref, &Project{Configurations: []string{"3BHK", "4BHK"}}))
	assert.Equal(t, 0, SimilarityScore(ref, &Project{Configurations: []string{"1BHK"}}))
	assert.Equal(t, 0, SimilarityScore(ref, &Project{}))
}

func TestSimilarityScore_BudgetOverlap(t *testing.T) {
	ref := &Project{BudgetMin: floatPtr(5000000), BudgetMax: floatPtr(8000000)}

	// Диапазон кандидата задевает диапазон опорного
	overlap := &Project{BudgetMin: floatPtr(7000000), BudgetMax: floatPtr(10000000)}
	assert.Equal(t, 25, SimilarityScore(ref, overlap))

	// Полностью выше
	above := &Project{BudgetMin: floatPtr(9000000), BudgetMax: floatPtr(12000000)}
	assert.Equal(t, 0, SimilarityScore(ref, above))

	// Кандидат без бюджета очков не получает
	assert.Equal(t, 0, SimilarityScore(ref, &Project{BudgetMin: floatPtr(7000000)}))

	// Незаданная граница опорного не ограничивает
	openRef := &Project{BudgetMin: floatPtr(5000000)}
	assert.Equal(t, 25, SimilarityScore(openRef, above))
}

func TestSimilarityScore_DeveloperAndTags(t *testing.T) {
	ref := &Project{
		DeveloperName:         strPtr("Godrej"),
		ClientRequirementTags: []string{"sea-view", "gym"},
	}
	candidate := &Project{
		DeveloperName:         strPtr("Godrej"),
		ClientRequirementTags: []string{"gym"},
	}
	assert.Equal(t, 20, SimilarityScore(ref, candidate))

	otherDev := &Project{DeveloperName: strPtr("Lodha")}
	assert.Equal(t, 0, SimilarityScore(ref, otherDev))
}

func TestRankSimilar(t *testing.T) {
	now := time.Now()
	ref := &Project{
		Location:       strPtr("Baner, Pune"),
		Configurations: []string{"2BHK"},
		DeveloperName:  strPtr("Godrej"),
	}

	candidates := []Project{
		{ID: 1, Location: strPtr("Baner"), CreatedAt: now.Add(-time.Hour)},
		{ID: 2, Location: strPtr("Baner"), Configurations: []string{"2BHK"}, CreatedAt: now},
		{ID: 3, Location: strPtr("Wakad")},
		{ID: 4, Location: strPtr("Baner"), CreatedAt: now},
	}

	ranked := RankSimilar(ref, candidates, 5)
	require.Len(t, ranked, 4)

	// Лучший - с пересечением конфигураций
	assert.Equal(t, int64(2), ranked[0].Project.ID)
	assert.Equal(t, 55, ranked[0].Score)

	// При равной оценке новее созданный идет раньше
	assert.Equal(t, int64(4), ranked[1].Project.ID)
	assert.Equal(t, int64(1), ranked[2].Project.ID)

	// Нулевая оценка не выбрасывает кандидата: он добивает топ
	assert.Equal(t, int64(3), ranked[3].Project.ID)
	assert.Equal(t, 0, ranked[3].Score)
}

func TestRankSimilar_Limit(t *testing.T) {
	ref := &Project{Configurations: []string{"2BHK"}}
	candidates := make([]Project, 8)
	for i := range candidates {
		candidates[i] = Project{ID: int64(i + 1), Configurations: []string{"2BHK"}}
	}

	ranked := RankSimilar(ref, candidates, 5)
	assert.Len(t, ranked, 5)
}
