package domain

import (
	"sort"
	"strings"
)

// Весовые коэффициенты эвристики похожести.
const (
	similarityLocationPoints  = 30
	similarityConfigPoints    = 25
	similarityBudgetPoints    = 25
	similarityDeveloperPoints = 10
	similarityTagPoints       = 10
)

// SimilarityScore считает целочисленную оценку похожести кандидата на
// опорный проект. Чем больше, тем похожее.
//
// Слагаемые фиксированы:
//   - +30: локация кандидата содержит первый сегмент (до запятой) локации опорного;
//   - +25: множества конфигураций пересекаются;
//   - +25: бюджетные диапазоны пересекаются;
//   - +10: застройщик совпадает точно;
//   - +10: множества клиентских тегов пересекаются.
func SimilarityScore(ref, candidate *Project) int {
	score := 0

	if refLoc := locationHead(ref.Location); refLoc != "" && candidate.Location != nil {
		if strings.Contains(strings.ToLower(*candidate.Location), strings.ToLower(refLoc)) {
			score += similarityLocationPoints
		}
	}

	if setsIntersect(ref.Configurations, candidate.Configurations) {
		score += similarityConfigPoints
	}

	if budgetRangesOverlap(ref, candidate) {
		score += similarityBudgetPoints
	}

	if ref.DeveloperName != nil && candidate.DeveloperName != nil &&
		*ref.DeveloperName == *candidate.DeveloperName {
		score += similarityDeveloperPoints
	}

	if setsIntersect(ref.ClientRequirementTags, candidate.ClientRequirementTags) {
		score += similarityTagPoints
	}

	return score
}

// ScoredProject - кандидат с набранной оценкой похожести.
type ScoredProject struct {
	Project Project
	Score   int
}

// RankSimilar оценивает кандидатов относительно опорного проекта и
// возвращает не более limit лучших. Ранжируются все кандидаты, включая
// набравших ноль; при равной оценке новее созданный идет раньше.
func RankSimilar(ref *Project, candidates []Project, limit int) []ScoredProject {
	scored := make([]ScoredProject, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, ScoredProject{
			Project: candidates[i],
			Score:   SimilarityScore(ref, &candidates[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Project.CreatedAt.After(scored[j].Project.CreatedAt)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// locationHead возвращает первый сегмент локации до запятой.
func locationHead(location *string) string {
	if location == nil {
		return ""
	}
	head, _, _ := strings.Cut(*location, ",")
	return strings.TrimSpace(head)
}

func setsIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// budgetRangesOverlap: интервалы пересекаются, если минимум кандидата не
// превышает максимум опорного и максимум кандидата не меньше минимума опорного.
// Незаданная граница опорного проекта трактуется как неограниченная.
func budgetRangesOverlap(ref, candidate *Project) bool {
	if candidate.BudgetMin == nil || candidate.BudgetMax == nil {
		return false
	}
	refMin := 0.0
	if ref.BudgetMin != nil {
		refMin = *ref.BudgetMin
	}
	refMax := 999999999.0
	if ref.BudgetMax != nil {
		refMax = *ref.BudgetMax
	}
	return *candidate.BudgetMin <= refMax && *candidate.BudgetMax >= refMin
}
