package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"gradebook/internal/domain/calendar"
	"gradebook/internal/domain/journal"
	"gradebook/report"
)

// Размер группы
const (
	MinGroupSize = 20
	MaxGroupSize = 30
)

// Цвета оформления журналов
const (
	headerColor     = "#366092"
	dateHeaderColor = "#4472C4"
	absenceFill     = "#FFC7CE"
	absenceFont     = "#9C0006"
)

// firstDateColumn первый столбец с датами занятий
const firstDateColumn = 3

// rosterHeaders столбцы списка студентов
var rosterHeaders = []string{"№", "Фамилия", "Имя", "Отчество"}

// Generator создает тестовые списки групп и журналы с оценками
type Generator struct {
	faker  *gofakeit.Faker
	now    func() time.Time
	logger *slog.Logger
}

// New создает генератор; seed 0 дает случайную последовательность
func New(seed int64, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		faker:  gofakeit.New(seed),
		now:    time.Now,
		logger: logger,
	}
}

// randomStudent случайный студент с согласованными по роду ФИО
func (g *Generator) randomStudent() journal.Student {
	surname := g.faker.RandomString(surnames)
	patronymic := patronymics[g.faker.Number(0, len(patronymics)-1)]
	if g.faker.Bool() {
		return journal.Student{
			LastName:   surname,
			FirstName:  g.faker.RandomString(maleNames),
			Patronymic: patronymic[0],
		}
	}
	return journal.Student{
		LastName:   surname + "а",
		FirstName:  g.faker.RandomString(femaleNames),
		Patronymic: patronymic[1],
	}
}

func solidStyle(f *excelize.File, fill, font string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: font},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

// writeRosterSheet заполняет лист списка: №, Фамилия, Имя, Отчество
func writeRosterSheet(f *excelize.File, sheet string, students []journal.Student, style int) error {
	widths := make([]int, len(rosterHeaders))
	for i, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		widths[i] = utf8.RuneCountInString(header)
	}

	for i, s := range students {
		row := i + 2
		values := []any{i + 1, s.LastName, s.FirstName, s.Patronymic}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		for col, v := range values {
			widths[col] = max(widths[col], utf8.RuneCountInString(fmt.Sprint(v)))
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(min(w+2, 50))); err != nil {
			return err
		}
	}
	return nil
}

// GenerateRosterBook создает книгу со списками групп: лист на группу, 20-30 студентов
func (g *Generator) GenerateRosterBook(dir string, groups []string) (string, error) {
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create folder: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	style, err := solidStyle(f, headerColor, "#FFFFFF")
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for _, group := range groups {
		sheet := report.SheetName(group)
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		students := make([]journal.Student, g.faker.Number(MinGroupSize, MaxGroupSize))
		for i := range students {
			students[i] = g.randomStudent()
		}
		if err := writeRosterSheet(f, sheet, students, style); err != nil {
			return "", fmt.Errorf("failed to write group %s: %w", group, err)
		}
		g.logger.Debug("Roster sheet created", "group", group, "students", len(students))
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return "", fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	path := filepath.Join(dir, fmt.Sprintf("список_групп_%s.xlsx", g.now().Format(report.TimestampLayout)))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save roster book: %w", err)
	}
	g.logger.Info("Roster book saved", "path", path, "groups", len(groups))
	return path, nil
}

// readRosterBook читает студентов каждого листа книги списков
func readRosterBook(path string) ([]string, map[string][]journal.Student, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open roster book: %w", err)
	}
	defer f.Close()

	groups := f.GetSheetList()
	students := make(map[string][]journal.Student, len(groups))
	for _, group := range groups {
		rows, err := f.GetRows(group)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sheet %s: %w", group, err)
		}
		list := []journal.Student{}
		for i, row := range rows {
			if i == 0 || len(row) < 4 {
				continue
			}
			s := journal.Student{
				LastName:   strings.TrimSpace(row[1]),
				FirstName:  strings.TrimSpace(row[2]),
				Patronymic: strings.TrimSpace(row[3]),
			}
			if s.Complete() {
				list = append(list, s)
			}
		}
		students[group] = list
	}
	return groups, students, nil
}

// BootstrapJournals создает папки групп: список студентов и пустой журнал на каждый предмет
// Возвращает число созданных групп
func (g *Generator) BootstrapJournals(rosterBook, journalsRoot string, subjects []string) (int, error) {
	if len(subjects) == 0 {
		subjects = journal.Subjects
	}
	groups, students, err := readRosterBook(rosterBook)
	if err != nil {
		return 0, err
	}

	journals := journal.NewJournals(journalsRoot)
	for _, group := range groups {
		if err := os.MkdirAll(journals.GroupPath(group), 0755); err != nil {
			return 0, fmt.Errorf("failed to create group folder: %w", err)
		}
		if err := saveRoster(journals.RosterPath(group), students[group]); err != nil {
			return 0, fmt.Errorf("group %s: %w", group, err)
		}
		for _, subject := range subjects {
			if err := saveSubjectJournal(journals.SubjectPath(group, subject), subject, students[group]); err != nil {
				return 0, fmt.Errorf("group %s, subject %s: %w", group, subject, err)
			}
		}
		g.logger.Info("Group folder created", "group", group, "students", len(students[group]))
	}
	return len(groups), nil
}

func saveRoster(path string, students []journal.Student) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Список студентов"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	style, err := solidStyle(f, headerColor, "#FFFFFF")
	if err != nil {
		return err
	}
	if err := writeRosterSheet(f, sheet, students, style); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func saveSubjectJournal(path, subject string, students []journal.Student) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := report.SheetName(subject)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	style, err := solidStyle(f, headerColor, "#FFFFFF")
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", journal.FullNameHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", style); err != nil {
		return err
	}
	for i, s := range students {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), s.FullName()); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// FillStats итоги заполнения журналов
type FillStats struct {
	Files    int
	Students int
	Marks    int
	Absences int
}

// FillGrades дописывает в журналы предметов столбцы рабочих дней месяца
// и заполняет их оценками по профилю студента и отметками о пропуске
func (g *Generator) FillGrades(journalsRoot string, year, month int) (FillStats, error) {
	var stats FillStats

	days, err := calendar.WorkingDays(year, month)
	if err != nil {
		return stats, err
	}

	journals := journal.NewJournals(journalsRoot)
	groups, err := journals.Groups()
	if err != nil {
		return stats, err
	}

	for _, group := range groups {
		entries, err := os.ReadDir(journals.GroupPath(group))
		if err != nil {
			return stats, fmt.Errorf("failed to read group folder %s: %w", group, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".xlsx") || name == journal.RosterFileName {
				continue
			}
			path := filepath.Join(journals.GroupPath(group), name)
			filled, err := g.fillJournal(path, days, &stats)
			if err != nil {
				g.logger.Error("Failed to fill journal", "path", path, "error", err)
				continue
			}
			if filled {
				stats.Files++
			}
		}
	}

	g.logger.Info("Grades generated",
		"month", calendar.MonthName(month),
		"files", stats.Files,
		"marks", stats.Marks,
		"absences", stats.Absences)
	return stats, nil
}

// fillJournal дописывает даты и отметки в один журнал; false, если в нем нет столбца ФИО
func (g *Generator) fillJournal(path string, days []string, stats *FillStats) (bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 || !containsHeader(rows[0], journal.FullNameHeader) {
		return false, nil
	}

	// Столбец B остается пустым, даты начинаются не раньше столбца C
	firstCol := firstDateColumn
	for _, row := range rows {
		firstCol = max(firstCol, len(row)+1)
	}

	dateStyle, err := solidStyle(f, dateHeaderColor, "#FFFFFF")
	if err != nil {
		return false, err
	}
	absenceStyle, err := solidStyle(f, absenceFill, absenceFont)
	if err != nil {
		return false, err
	}

	for i, day := range days {
		cell, _ := excelize.CoordinatesToCellName(firstCol+i, 1)
		if err := f.SetCellValue(sheet, cell, day); err != nil {
			return false, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
			return false, err
		}
	}

	for row := 2; row <= len(rows); row++ {
		p := pickProfile(g.faker.Float64Range(0, 1))
		for i := range days {
			cell, _ := excelize.CoordinatesToCellName(firstCol+i, row)
			if g.faker.Float64Range(0, 1) < AbsenceProbability {
				if err := f.SetCellValue(sheet, cell, journal.AbsenceMarker); err != nil {
					return false, err
				}
				if err := f.SetCellStyle(sheet, cell, cell, absenceStyle); err != nil {
					return false, err
				}
				stats.Absences++
			} else if err := f.SetCellValue(sheet, cell, g.grade(p)); err != nil {
				return false, err
			}
			stats.Marks++
		}
		stats.Students++
	}

	first, _ := excelize.ColumnNumberToName(firstCol)
	last, _ := excelize.ColumnNumberToName(firstCol + len(days) - 1)
	if err := f.SetColWidth(sheet, first, last, 12); err != nil {
		return false, err
	}
	return true, f.Save()
}

func containsHeader(header []string, name string) bool {
	for _, h := range header {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}
