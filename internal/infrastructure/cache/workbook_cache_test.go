package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/domain/journal"
)

// countingOpener считает обращения к диску и отдает заранее заданные листы
type countingOpener struct {
	sheets map[string]*journal.Sheet
	fail   map[string]bool
	opens  map[string]int
	closed int
}

func newCountingOpener() *countingOpener {
	return &countingOpener{
		sheets: map[string]*journal.Sheet{},
		fail:   map[string]bool{},
		opens:  map[string]int{},
	}
}

func (o *countingOpener) Open(path string) (*journal.Workbook, error) {
	o.opens[path]++
	if o.fail[path] {
		return nil, errors.New("broken workbook")
	}
	return journal.NewWorkbook(path, o.sheets[path], closerFunc(func() error {
		o.closed++
		return nil
	})), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// touch создает пустой файл, чтобы кэш не считал его отсутствующим
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func rosterSheet(rows ...[]string) *journal.Sheet {
	grid := [][]journal.Cell{{
		journal.TextCell("№"), journal.TextCell("Фамилия"),
		journal.TextCell("Имя"), journal.TextCell("Отчество"),
	}}
	for i, r := range rows {
		cells := []journal.Cell{journal.NumberCell(float64(i + 1))}
		for _, v := range r {
			cells = append(cells, journal.TextCell(v))
		}
		grid = append(grid, cells)
	}
	return journal.NewSheet("Список студентов", grid)
}

func TestLoad_ReadsOnce(t *testing.T) {
	root := t.TempDir()
	journals := journal.NewJournals(root)
	path := journals.SubjectPath("ОДЛ-121", "Химия")
	touch(t, path)

	opener := newCountingOpener()
	opener.sheets[path] = journal.NewSheet("Химия", nil)
	c := NewWorkbookCache(journals, opener, nil)

	first := c.Load(path)
	second := c.Load(path)

	require.Equal(t, StatusLoaded, first.Status)
	assert.Same(t, first.Workbook, second.Workbook)
	assert.Same(t, first.Sheet(), second.Sheet())
	assert.Equal(t, 1, opener.opens[path])
	assert.Equal(t, 1, c.Size())
}

func TestLoad_AbsentAndMalformed(t *testing.T) {
	root := t.TempDir()
	journals := journal.NewJournals(root)
	opener := newCountingOpener()
	c := NewWorkbookCache(journals, opener, nil)

	missing := journals.SubjectPath("ОДЛ-121", "Физика")
	result := c.Load(missing)
	assert.Equal(t, StatusAbsent, result.Status)
	assert.Nil(t, result.Sheet())
	assert.Equal(t, 0, opener.opens[missing])

	broken := journals.SubjectPath("ОДЛ-121", "Химия")
	touch(t, broken)
	opener.fail[broken] = true

	result = c.Load(broken)
	assert.Equal(t, StatusMalformed, result.Status)
	assert.Error(t, result.Err)
	assert.Nil(t, result.Sheet())

	// Неудачный результат тоже запоминается
	c.Load(broken)
	assert.Equal(t, 1, opener.opens[broken])
}

func TestRoster(t *testing.T) {
	root := t.TempDir()
	journals := journal.NewJournals(root)
	path := journals.RosterPath("ОДЛ-121")
	touch(t, path)

	opener := newCountingOpener()
	opener.sheets[path] = rosterSheet(
		[]string{"Иванов", "Петр", "Сергеевич"},
		[]string{"Петрова", "Анна"},
		[]string{"Сидоров", "", "Олегович"},
		[]string{"Иванова", "Мария", "Ивановна"},
	)
	c := NewWorkbookCache(journals, opener, nil)

	students := c.Roster("ОДЛ-121")
	assert.Equal(t, []string{"Иванов Петр Сергеевич", "Иванова Мария Ивановна"}, students)

	again := c.Roster("ОДЛ-121")
	assert.Equal(t, students, again)
	assert.Equal(t, 1, opener.opens[path])
}

func TestRoster_MissingFile(t *testing.T) {
	c := NewWorkbookCache(journal.NewJournals(t.TempDir()), newCountingOpener(), nil)

	students := c.Roster("ЮР-148")
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestClose_ReleasesAndClears(t *testing.T) {
	root := t.TempDir()
	journals := journal.NewJournals(root)
	rosterPath := journals.RosterPath("ОДЛ-121")
	subjectPath := journals.SubjectPath("ОДЛ-121", "Химия")
	touch(t, rosterPath)
	touch(t, subjectPath)

	opener := newCountingOpener()
	opener.sheets[rosterPath] = rosterSheet([]string{"Иванов", "Петр", "Сергеевич"})
	opener.sheets[subjectPath] = journal.NewSheet("Химия", nil)
	c := NewWorkbookCache(journals, opener, nil)

	c.Roster("ОДЛ-121")
	c.Load(subjectPath)
	c.Load(journals.SubjectPath("ОДЛ-121", "Физика"))

	require.NoError(t, c.Close())
	assert.Equal(t, 2, opener.closed)
	assert.Equal(t, 0, c.Size())

	// Повторное закрытие безопасно, после очистки файл читается заново
	require.NoError(t, c.Close())
	c.Load(subjectPath)
	assert.Equal(t, 2, opener.opens[subjectPath])
}

func TestGroups(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ТН-101"), 0755))
	c := NewWorkbookCache(journal.NewJournals(root), newCountingOpener(), nil)

	groups, err := c.Groups()
	require.NoError(t, err)
	assert.Equal(t, []string{"ТН-101"}, groups)
}

func TestLoadStatusString(t *testing.T) {
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "absent", StatusAbsent.String())
	assert.Equal(t, "malformed", StatusMalformed.String())
}
