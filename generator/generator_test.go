package generator

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gradebook/importer"
	"gradebook/internal/domain/attestation"
	"gradebook/internal/domain/journal"
	"gradebook/internal/infrastructure/cache"
)

var testGroups = []string{"ОДЛ-121", "ЮР-148"}

func newTestGenerator(seed int64) *Generator {
	g := New(seed, nil)
	g.now = func() time.Time { return time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerateRosterBook(t *testing.T) {
	dir := t.TempDir()
	path, err := newTestGenerator(42).GenerateRosterBook(dir, testGroups)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "список_групп_20250901_080000.xlsx"), path)

	groups, students, err := readRosterBook(path)
	require.NoError(t, err)
	assert.Equal(t, testGroups, groups)

	for _, group := range testGroups {
		list := students[group]
		assert.GreaterOrEqual(t, len(list), MinGroupSize)
		assert.LessOrEqual(t, len(list), MaxGroupSize)
		for _, s := range list {
			assert.True(t, s.Complete(), "incomplete student %+v", s)
		}
	}

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	header, err := f.GetRows(testGroups[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"№", "Фамилия", "Имя", "Отчество"}, header[0])
	assert.Equal(t, "1", header[1][0])
}

func TestGenerateRosterBook_Deterministic(t *testing.T) {
	first, err := newTestGenerator(7).GenerateRosterBook(t.TempDir(), testGroups)
	require.NoError(t, err)
	second, err := newTestGenerator(7).GenerateRosterBook(t.TempDir(), testGroups)
	require.NoError(t, err)

	_, a, err := readRosterBook(first)
	require.NoError(t, err)
	_, b, err := readRosterBook(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomStudent_GenderAgreement(t *testing.T) {
	g := newTestGenerator(3)
	for i := 0; i < 200; i++ {
		s := g.randomStudent()
		female := s.LastName[len(s.LastName)-len("а"):] == "а"
		if female {
			assert.Contains(t, femaleNames, s.FirstName)
			assert.Equal(t, "на", s.Patronymic[len(s.Patronymic)-len("на"):])
		} else {
			assert.Contains(t, maleNames, s.FirstName)
			assert.Equal(t, "ич", s.Patronymic[len(s.Patronymic)-len("ич"):])
		}
	}
}

// bootstrap создает книгу списков и папку журналов по ней
func bootstrap(t *testing.T, g *Generator, subjects []string) (string, *journal.Journals) {
	t.Helper()
	tmp := t.TempDir()
	book, err := g.GenerateRosterBook(tmp, testGroups)
	require.NoError(t, err)

	root := filepath.Join(tmp, "Журналы", "1 Курс")
	count, err := g.BootstrapJournals(book, root, subjects)
	require.NoError(t, err)
	assert.Equal(t, len(testGroups), count)
	return book, journal.NewJournals(root)
}

func TestBootstrapJournals(t *testing.T) {
	subjects := []string{"Математика", "Основы безопасности жизнедеятельности"}
	g := newTestGenerator(11)
	book, journals := bootstrap(t, g, subjects)

	_, students, err := readRosterBook(book)
	require.NoError(t, err)

	wc := cache.NewWorkbookCache(journals, importer.NewExcelOpener(), nil)
	defer wc.Close()

	groups, err := wc.Groups()
	require.NoError(t, err)
	assert.Equal(t, testGroups, groups)

	for _, group := range testGroups {
		expected := make([]string, 0, len(students[group]))
		for _, s := range students[group] {
			expected = append(expected, s.FullName())
		}
		assert.Equal(t, expected, wc.Roster(group))

		for _, subject := range subjects {
			sheet := wc.Load(journals.SubjectPath(group, subject)).Sheet()
			require.NotNil(t, sheet, "journal %s/%s", group, subject)
			assert.Equal(t, journal.FullNameHeader, sheet.Cell(1, 1).Raw)
			assert.Equal(t, expected[0], sheet.Cell(2, 1).Raw)
			assert.Equal(t, len(expected)+1, sheet.MaxRow())
			assert.LessOrEqual(t, len([]rune(sheet.Name)), 31)
		}
	}
}

func TestFillGrades_RoundTrip(t *testing.T) {
	subjects := []string{"Математика", "Физика"}
	g := newTestGenerator(5)
	_, journals := bootstrap(t, g, subjects)

	september, err := g.FillGrades(journals.Root, 2025, 9)
	require.NoError(t, err)
	assert.Equal(t, len(testGroups)*len(subjects), september.Files)
	assert.Equal(t, september.Students*22, september.Marks)
	assert.Greater(t, september.Absences, 0)

	october, err := g.FillGrades(journals.Root, 2025, 10)
	require.NoError(t, err)
	assert.Equal(t, october.Students*23, october.Marks)

	wc := cache.NewWorkbookCache(journals, importer.NewExcelOpener(), nil)
	defer wc.Close()

	group := testGroups[0]
	student := wc.Roster(group)[0]
	path := journals.SubjectPath(group, "Математика")
	sheet := wc.Load(path).Sheet()
	require.NotNil(t, sheet)

	// Даты начинаются со столбца C, сентябрь и октябрь идут подряд
	assert.True(t, sheet.Cell(1, 2).IsBlank())
	assert.Equal(t, "01.09.2025", sheet.Cell(1, 3).Raw)
	assert.Equal(t, "30.09.2025", sheet.Cell(1, 24).Raw)
	assert.Equal(t, "01.10.2025", sheet.Cell(1, 25).Raw)
	assert.Equal(t, 2+22+23, sheet.MaxColumn())

	// Извлеченные оценки совпадают с содержимым ячеек
	var grades []float64
	absences := 0
	for col := 3; col <= 24; col++ {
		cell := sheet.Cell(2, col)
		if cell.IsAbsence() {
			absences++
			continue
		}
		grade, ok := cell.Grade()
		require.True(t, ok, "column %d must hold a grade or an absence", col)
		grades = append(grades, grade)
	}

	monthFilter, err := journal.MonthFilter(2025, 9)
	require.NoError(t, err)
	record := attestation.NewExtractor(wc).Extract(group, "Математика", student, monthFilter)
	assert.Equal(t, 22, record.Lessons)
	assert.Equal(t, absences, record.Absences)
	if len(grades) == 0 {
		assert.Empty(t, record.Grades)
	} else {
		assert.Equal(t, grades, record.Grades)
	}

	whole := attestation.NewExtractor(wc).Extract(group, "Математика", student, journal.NoFilter())
	assert.Equal(t, 45, whole.Lessons)
}

func TestFillGrades_SkipsRosterAndForeignFiles(t *testing.T) {
	g := newTestGenerator(9)
	_, journals := bootstrap(t, g, []string{"Химия"})

	// Книга без столбца ФИО не изменяется
	foreign := excelize.NewFile()
	require.NoError(t, foreign.SetCellValue("Sheet1", "A1", "Заметки"))
	require.NoError(t, foreign.SaveAs(filepath.Join(journals.GroupPath(testGroups[0]), "заметки.xlsx")))
	require.NoError(t, foreign.Close())

	stats, err := g.FillGrades(journals.Root, 2025, 9)
	require.NoError(t, err)
	assert.Equal(t, len(testGroups), stats.Files)

	roster, err := excelize.OpenFile(journals.RosterPath(testGroups[0]))
	require.NoError(t, err)
	defer roster.Close()
	rows, err := roster.GetRows(roster.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows[0], 4)
}

func TestFillGrades_Errors(t *testing.T) {
	g := newTestGenerator(1)

	_, err := g.FillGrades(t.TempDir(), 2025, 13)
	assert.Error(t, err)

	_, err = g.FillGrades(filepath.Join(t.TempDir(), "missing"), 2025, 9)
	assert.Error(t, err)

	_, err = g.BootstrapJournals(filepath.Join(t.TempDir(), "missing.xlsx"), t.TempDir(), nil)
	assert.Error(t, err)
}

func TestPickProfile(t *testing.T) {
	tests := []struct {
		r        float64
		expected profile
	}{
		{0, profileOnlyFive},
		{0.149, profileOnlyFive},
		{0.15, profileGoodAndExcellent},
		{0.49, profileGoodAndExcellent},
		{0.5, profileWeak},
		{0.69, profileWeak},
		{0.7, profileMixed},
		{0.99, profileMixed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, pickProfile(tt.r), "r=%v", tt.r)
	}
}

func TestGrade_ProfileRanges(t *testing.T) {
	g := newTestGenerator(2)
	allowed := map[profile][]int{
		profileOnlyFive:         {5},
		profileGoodAndExcellent: {4, 5},
		profileWeak:             {2, 3},
		profileMixed:            {2, 3, 4, 5},
	}
	for p, grades := range allowed {
		for i := 0; i < 100; i++ {
			assert.Contains(t, grades, g.grade(p))
		}
	}
}

func TestDefaultGroups(t *testing.T) {
	assert.Len(t, DefaultGroups, 16)
	assert.Contains(t, DefaultGroups, "ПСО-345(245)")
}
