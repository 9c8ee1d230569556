package journal

import (
	"io"
	"strconv"
	"strings"
)

// Subjects фиксированный список предметов, общий для всех групп
var Subjects = []string{
	"Математика", "Русский язык", "Литература", "Иностранный язык",
	"Информатика", "История", "Обществознание", "Физика", "Химия",
	"Биология", "География", "Физическая культура",
	"Основы безопасности жизнедеятельности", "Основы профессиональной деятельности",
}

// AbsenceMarker отметка о пропуске занятия
const AbsenceMarker = "Н"

// FullNameHeader заголовок столбца с ФИО в журналах предметов
const FullNameHeader = "ФИО"

// Оценки в журнале
const (
	MinGrade = 2
	MaxGrade = 5
)

// Student студент из списка группы
type Student struct {
	LastName   string
	FirstName  string
	Patronymic string
}

// FullName возвращает ФИО через пробел
func (s Student) FullName() string {
	return s.LastName + " " + s.FirstName + " " + s.Patronymic
}

// Complete проверяет, что заполнены все три части ФИО
func (s Student) Complete() bool {
	return s.LastName != "" && s.FirstName != "" && s.Patronymic != ""
}

// CellKind тип значения ячейки
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell значение ячейки листа
type Cell struct {
	Kind   CellKind
	Raw    string
	Number float64
}

// NumberCell создает числовую ячейку
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Raw: strconv.FormatFloat(v, 'f', -1, 64), Number: v}
}

// TextCell создает текстовую ячейку; пустая строка дает пустую ячейку
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Raw: s}
}

// IsBlank проверяет, что ячейка пустая или содержит только пробелы
func (c Cell) IsBlank() bool {
	return c.Kind == CellEmpty || strings.TrimSpace(c.Raw) == ""
}

// IsAbsence проверяет отметку о пропуске (без учета регистра)
func (c Cell) IsAbsence() bool {
	return c.Kind == CellText && strings.EqualFold(strings.TrimSpace(c.Raw), AbsenceMarker)
}

// Grade возвращает оценку, если ячейка содержит число в диапазоне [2, 5]
func (c Cell) Grade() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	if c.Number < MinGrade || c.Number > MaxGrade {
		return 0, false
	}
	return c.Number, true
}

// Sheet лист рабочей книги, адресация строк и столбцов с 1
type Sheet struct {
	Name string
	rows [][]Cell
}

// NewSheet создает лист из строк ячеек
func NewSheet(name string, rows [][]Cell) *Sheet {
	return &Sheet{Name: name, rows: rows}
}

// Cell возвращает ячейку; вне заполненной области ячейка пустая
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > len(s.rows) {
		return Cell{}
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return Cell{}
	}
	return r[col-1]
}

// MaxRow номер последней строки
func (s *Sheet) MaxRow() int {
	return len(s.rows)
}

// MaxColumn номер последнего столбца среди всех строк
func (s *Sheet) MaxColumn() int {
	maxCol := 0
	for _, r := range s.rows {
		if len(r) > maxCol {
			maxCol = len(r)
		}
	}
	return maxCol
}

// Workbook прочитанная рабочая книга с активным листом
type Workbook struct {
	Path   string
	Sheet  *Sheet
	closer io.Closer
}

// NewWorkbook создает книгу; closer освобождает файл и может быть nil
func NewWorkbook(path string, sheet *Sheet, closer io.Closer) *Workbook {
	return &Workbook{Path: path, Sheet: sheet, closer: closer}
}

// Close освобождает ресурсы книги
func (w *Workbook) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}
