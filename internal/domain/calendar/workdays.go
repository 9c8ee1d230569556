package calendar

import (
	"fmt"
	"strings"
	"time"

	"gradebook/internal/apperrors"
)

// DateLayout формат дат в заголовках журналов
const DateLayout = "02.01.2006"

var monthNamesGenitive = map[int]string{
	1: "января", 2: "февраля", 3: "марта", 4: "апреля",
	5: "мая", 6: "июня", 7: "июля", 8: "августа",
	9: "сентября", 10: "октября", 11: "ноября", 12: "декабря",
}

var monthNames = map[int]string{
	1: "январь", 2: "февраль", 3: "март", 4: "апрель",
	5: "май", 6: "июнь", 7: "июль", 8: "август",
	9: "сентябрь", 10: "октябрь", 11: "ноябрь", 12: "декабрь",
}

// ValidateMonth проверяет месяц и год
func ValidateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return apperrors.NewValidationError(
			fmt.Sprintf("месяц должен быть от 1 до 12, получено %d", month), nil)
	}
	if year < 1 || year > 9999 {
		return apperrors.NewValidationError(
			fmt.Sprintf("некорректный год: %d", year), nil)
	}
	return nil
}

// WorkingDays возвращает рабочие дни (пн-пт) месяца в формате DD.MM.YYYY
func WorkingDays(year, month int) ([]string, error) {
	if err := ValidateMonth(year, month); err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Последний день месяца: первое число следующего минус день, декабрь переходит на январь
	end := start.AddDate(0, 1, -1)

	return WorkingDaysBetween(start, end), nil
}

// WorkingDaysBetween возвращает рабочие дни в диапазоне [from, to] включительно
func WorkingDaysBetween(from, to time.Time) []string {
	from = DateOnly(from)
	to = DateOnly(to)

	days := []string{}
	for current := from; !current.After(to); current = current.AddDate(0, 0, 1) {
		if IsWorkingDay(current) {
			days = append(days, current.Format(DateLayout))
		}
	}
	return days
}

// IsWorkingDay проверяет, что дата приходится на понедельник-пятницу
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в одном из поддерживаемых форматов
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	formats := []string{
		DateLayout,
		"2006-01-02",
		"02/01/2006",
		"2006/01/02",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthNameGenitive возвращает название месяца в родительном падеже ("сентября")
func MonthNameGenitive(month int) string {
	if name, ok := monthNamesGenitive[month]; ok {
		return name
	}
	return "неизвестного"
}

// MonthName возвращает название месяца ("сентябрь")
func MonthName(month int) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return "неизвестный"
}
