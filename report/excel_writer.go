package report

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/domain/attestation"
	"gradebook/internal/domain/journal"
)

// Заголовки отчета
const (
	NameHeader     = "ФИО"
	AbsencesHeader = "Пропуски"
)

// Цвета заливки заголовков
const (
	nameHeaderColor    = "#366092"
	subjectHeaderColor = "#4472C4"
)

// maxColumnWidth предельная ширина столбца при автоподборе
const maxColumnWidth = 30

// ExcelWriter записывает аттестацию в книгу Excel: лист на группу
type ExcelWriter struct {
	resultFolder string
	subjects     []string
	now          func() time.Time
	logger       *slog.Logger
}

// NewExcelWriter создает писатель отчетов в папку resultFolder
func NewExcelWriter(resultFolder string, subjects []string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if len(subjects) == 0 {
		subjects = journal.Subjects
	}
	return &ExcelWriter{
		resultFolder: resultFolder,
		subjects:     subjects,
		now:          time.Now,
		logger:       logger,
	}
}

// headerStyles стили заголовка: столбец ФИО и столбцы предметов
type headerStyles struct {
	name    int
	subject int
}

func newHeaderStyles(f *excelize.File) (headerStyles, error) {
	build := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
	}

	var styles headerStyles
	var err error
	if styles.name, err = build(nameHeaderColor); err != nil {
		return styles, fmt.Errorf("failed to create header style: %w", err)
	}
	if styles.subject, err = build(subjectHeaderColor); err != nil {
		return styles, fmt.Errorf("failed to create subject header style: %w", err)
	}
	return styles, nil
}

// sheetWriter заполняет лист и запоминает ширину столбцов
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	widths map[int]int
}

func (w *sheetWriter) set(col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(displayValue(value)); n > w.widths[col] {
		w.widths[col] = n
	}
	return nil
}

func (w *sheetWriter) applyWidths() error {
	for col, width := range w.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.sheet, name, name, float64(min(width+2, maxColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}

// displayValue текст значения ячейки для расчета ширины
func displayValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// WriteAssessment сохраняет аттестацию групп и возвращает путь к файлу
func (w *ExcelWriter) WriteAssessment(reports []attestation.GroupReport, filter journal.DateFilter) (string, error) {
	if err := ensureFolder(w.resultFolder); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newHeaderStyles(f)
	if err != nil {
		return "", err
	}

	defaultSheet := f.GetSheetName(0)
	used := map[string]bool{}
	students := 0
	for _, report := range reports {
		name := uniqueSheetName(SheetName(report.Group), used)
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := w.writeGroup(f, name, report, styles); err != nil {
			return "", fmt.Errorf("failed to write group %s: %w", report.Group, err)
		}
		students += len(report.Students)
	}

	// Стандартный лист удаляется, только если созданы листы групп
	if len(reports) > 0 && !used[strings.ToLower(defaultSheet)] {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return "", fmt.Errorf("failed to delete default sheet: %w", err)
		}
		f.SetActiveSheet(0)
	}

	path := outputPath(w.resultFolder, AssessmentFileName(filter, w.now()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	w.logger.Info("Assessment workbook saved",
		"path", path,
		"sheets", len(reports),
		"students", students)
	return path, nil
}

// writeGroup заголовок, строки студентов и итоговый блок показателей группы
func (w *ExcelWriter) writeGroup(f *excelize.File, sheet string, report attestation.GroupReport, styles headerStyles) error {
	sw := &sheetWriter{f: f, sheet: sheet, widths: map[int]int{}}

	headers := append(append([]string{NameHeader}, w.subjects...), AbsencesHeader)
	for i, header := range headers {
		col := i + 1
		if err := sw.set(col, 1, header); err != nil {
			return err
		}
		style := styles.subject
		if col == 1 {
			style = styles.name
		}
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}

	for i, student := range report.Students {
		row := i + 2
		if err := sw.set(1, row, student.FullName); err != nil {
			return err
		}
		for j, subject := range w.subjects {
			average := 0
			if result, ok := student.Subject(subject); ok {
				average = result.Average
			}
			if err := sw.set(j+2, row, average); err != nil {
				return err
			}
		}
		if err := sw.set(len(w.subjects)+2, row, student.AbsenceHours()); err != nil {
			return err
		}
	}

	start := MetricsStartRow(len(report.Students))
	for i, metric := range report.Summary.Metrics() {
		if err := sw.set(1, start+i, metric.Label); err != nil {
			return err
		}
		if err := sw.set(2, start+i, metric.Value); err != nil {
			return err
		}
	}

	w.logger.Debug("Group sheet written", "group", report.Group, "students", len(report.Students))
	return sw.applyWidths()
}

// MetricsStartRow первая строка итогового блока: через одну после последнего студента
func MetricsStartRow(students int) int {
	return 1 + students + 2
}
