package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// copyMarkerPattern распознаёт маркер "(Copy)" или "(Copy N)" в конце имени.
var copyMarkerPattern = regexp.MustCompile(`(?i)\(Copy(?:\s+(\d+))?\)$`)

// ResolveUniqueName выбирает итоговое имя проекта при возможном конфликте.
// existing - имена уже сохранённых проектов с тем же застройщиком и локацией,
// чьё имя начинается с candidate (без учёта регистра).
//
// Совпадение только по префиксу конфликтом не считается: существующий
// "Tower" не блокирует "Tower Extension". Если же точное совпадение есть,
// к имени добавляется маркер копии со следующим по порядку номером
// (голое "(Copy)" считается номером 1).
func ResolveUniqueName(candidate string, existing []string) string {
	if len(existing) == 0 {
		return candidate
	}

	exactMatch := false
	for _, name := range existing {
		if strings.EqualFold(name, candidate) {
			exactMatch = true
			break
		}
	}
	if !exactMatch {
		return candidate
	}

	maxCopyNum := 0
	for _, name := range existing {
		m := copyMarkerPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		num := 1
		if m[1] != "" {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				num = parsed
			}
		}
		if num > maxCopyNum {
			maxCopyNum = num
		}
	}

	if maxCopyNum == 0 {
		return candidate + " (Copy)"
	}
	return candidate + " (Copy " + strconv.Itoa(maxCopyNum+1) + ")"
}
