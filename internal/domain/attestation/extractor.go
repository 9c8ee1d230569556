package attestation

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/domain/calendar"
	"gradebook/internal/domain/journal"
	"gradebook/internal/infrastructure/cache"
)

// firstLessonColumn первый столбец с занятиями (1 - ФИО, 2 - пустой)
const firstLessonColumn = 3

// Source источник книг и списков студентов
type Source interface {
	Journals() *journal.Journals
	Load(path string) cache.LoadResult
	Groups() ([]string, error)
	Roster(group string) []string
}

type columnKey struct {
	sheet  *journal.Sheet
	filter journal.DateFilter
}

// Extractor извлекает оценки и пропуски студента из журнала предмета
type Extractor struct {
	source  Source
	columns map[columnKey][]int
}

// NewExtractor создает извлекатель поверх источника книг
func NewExtractor(source Source) *Extractor {
	return &Extractor{
		source:  source,
		columns: make(map[columnKey][]int),
	}
}

// Extract возвращает оценки, пропуски и число занятий студента по предмету
// Занятием считается любая непустая отметка, даже нераспознанная
// Отсутствующий или нечитаемый журнал и отсутствие студента дают пустой результат
func (e *Extractor) Extract(group, subject, student string, filter journal.DateFilter) LessonRecord {
	record := LessonRecord{Grades: []float64{}}

	sheet := e.source.Load(e.source.Journals().SubjectPath(group, subject)).Sheet()
	if sheet == nil {
		return record
	}

	row := findStudentRow(sheet, student)
	if row == 0 {
		return record
	}

	for _, col := range e.lessonColumns(sheet, filter) {
		cell := sheet.Cell(row, col)
		if cell.IsBlank() {
			continue
		}
		record.Lessons++
		if grade, ok := cell.Grade(); ok {
			record.Grades = append(record.Grades, grade)
		} else if cell.IsAbsence() {
			record.Absences++
		}
	}
	return record
}

// findStudentRow номер первой строки с точным совпадением ФИО, 0 если не найдена
func findStudentRow(sheet *journal.Sheet, student string) int {
	for row := 2; row <= sheet.MaxRow(); row++ {
		if sheet.Cell(row, 1).Raw == student {
			return row
		}
	}
	return 0
}

func (e *Extractor) lessonColumns(sheet *journal.Sheet, filter journal.DateFilter) []int {
	key := columnKey{sheet: sheet, filter: filter}
	if cols, exists := e.columns[key]; exists {
		return cols
	}
	cols := selectColumns(sheet, filter)
	e.columns[key] = cols
	return cols
}

// selectColumns столбцы занятий, попадающие в фильтр
func selectColumns(sheet *journal.Sheet, filter journal.DateFilter) []int {
	var cols []int
	switch filter.Kind {
	case journal.FilterMonth:
		days, err := calendar.WorkingDays(filter.Year, filter.Month)
		if err != nil {
			return nil
		}
		allowed := make(map[string]struct{}, len(days))
		for _, d := range days {
			allowed[d] = struct{}{}
		}
		for col := firstLessonColumn; col <= sheet.MaxColumn(); col++ {
			date, ok := headerDate(sheet.Cell(1, col))
			if !ok {
				continue
			}
			if _, exists := allowed[date.Format(calendar.DateLayout)]; exists {
				cols = append(cols, col)
			}
		}
	case journal.FilterRange:
		for col := firstLessonColumn; col <= sheet.MaxColumn(); col++ {
			date, ok := headerDate(sheet.Cell(1, col))
			if ok && filter.Contains(date) {
				cols = append(cols, col)
			}
		}
	default:
		for col := firstLessonColumn; col <= sheet.MaxColumn(); col++ {
			cols = append(cols, col)
		}
	}
	return cols
}

// headerDate разбирает дату из заголовка столбца: текст или дата Excel
func headerDate(cell journal.Cell) (time.Time, bool) {
	switch cell.Kind {
	case journal.CellText:
		return calendar.ParseDate(strings.TrimSpace(cell.Raw))
	case journal.CellNumber:
		if cell.Number <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(cell.Number, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
