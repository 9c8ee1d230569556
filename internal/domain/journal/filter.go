package journal

import (
	"fmt"
	"time"

	"gradebook/internal/apperrors"
	"gradebook/internal/domain/calendar"
)

// FilterKind вид фильтра по датам
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterMonth
	FilterRange
)

// DateFilter отбор столбцов журнала по датам
type DateFilter struct {
	Kind  FilterKind
	Year  int
	Month int
	From  time.Time
	To    time.Time
}

// NoFilter все столбцы с датами
func NoFilter() DateFilter {
	return DateFilter{Kind: FilterNone}
}

// MonthFilter рабочие дни указанного месяца
func MonthFilter(year, month int) (DateFilter, error) {
	if err := calendar.ValidateMonth(year, month); err != nil {
		return DateFilter{}, err
	}
	return DateFilter{Kind: FilterMonth, Year: year, Month: month}, nil
}

// RangeFilter даты в диапазоне [from, to] включительно
func RangeFilter(from, to time.Time) (DateFilter, error) {
	from = calendar.DateOnly(from)
	to = calendar.DateOnly(to)
	if to.Before(from) {
		return DateFilter{}, apperrors.NewValidationError(
			fmt.Sprintf("дата окончания %s раньше даты начала %s",
				to.Format(calendar.DateLayout), from.Format(calendar.DateLayout)), nil)
	}
	return DateFilter{Kind: FilterRange, From: from, To: to}, nil
}

// Contains проверяет попадание даты в диапазон фильтра
func (f DateFilter) Contains(t time.Time) bool {
	d := calendar.DateOnly(t)
	return !d.Before(f.From) && !d.After(f.To)
}

// Describe возвращает описание периода для логов и заголовков
func (f DateFilter) Describe() string {
	switch f.Kind {
	case FilterMonth:
		return fmt.Sprintf("за %s %d", calendar.MonthName(f.Month), f.Year)
	case FilterRange:
		return fmt.Sprintf("с %s по %s",
			f.From.Format(calendar.DateLayout), f.To.Format(calendar.DateLayout))
	default:
		return "за весь период"
	}
}
