package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"gradebook/internal/domain/calendar"
	"gradebook/internal/domain/journal"
)

// TimestampLayout метка времени в именах файлов
const TimestampLayout = "20060102_150405"

// maxSheetName ограничение Excel на длину имени листа
const maxSheetName = 31

// AssessmentFileName имя файла аттестации за период
func AssessmentFileName(filter journal.DateFilter, now time.Time) string {
	ts := now.Format(TimestampLayout)
	switch filter.Kind {
	case journal.FilterMonth:
		return fmt.Sprintf("Месячная аттестация_%s_%d_%s.xlsx",
			calendar.MonthNameGenitive(filter.Month), filter.Year, ts)
	case journal.FilterRange:
		return fmt.Sprintf("Аттестация_%s-%s_%s.xlsx",
			filter.From.Format(calendar.DateLayout), filter.To.Format(calendar.DateLayout), ts)
	default:
		return fmt.Sprintf("Месячная аттестация_%s.xlsx", ts)
	}
}

// SheetName приводит название группы к допустимому имени листа
func SheetName(group string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(group, "'"))

	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" {
		name = "Группа"
	}
	return name
}

// uniqueSheetName добавляет номер, если имя листа уже занято
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(name)
		if limit := maxSheetName - utf8.RuneCountInString(suffix); len(runes) > limit {
			runes = runes[:limit]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// ensureFolder создает папку результатов
func ensureFolder(folder string) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("failed to create result folder %s: %w", folder, err)
	}
	return nil
}

func outputPath(folder, name string) string {
	return filepath.Join(folder, name)
}
