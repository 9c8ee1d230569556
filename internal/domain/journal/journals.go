package journal

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gradebook/internal/apperrors"
)

// RosterFileName файл со списком студентов группы
const RosterFileName = "студенты.xlsx"

// Journals папка с журналами: <root>/<группа>/студенты.xlsx и <root>/<группа>/<предмет>.xlsx
type Journals struct {
	Root string
}

// NewJournals создает описание папки журналов
func NewJournals(root string) *Journals {
	return &Journals{Root: root}
}

// Groups возвращает названия групп (подпапки) в порядке русской сортировки
func (j *Journals) Groups() ([]string, error) {
	entries, err := os.ReadDir(j.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("папка %s не найдена", j.Root), err)
		}
		return nil, apperrors.NewInternalError("failed to list journals", err)
	}

	groups := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			groups = append(groups, entry.Name())
		}
	}

	collate.New(language.Russian).SortStrings(groups)
	return groups, nil
}

// GroupPath путь к папке группы
func (j *Journals) GroupPath(group string) string {
	return filepath.Join(j.Root, group)
}

// RosterPath путь к списку студентов группы
func (j *Journals) RosterPath(group string) string {
	return filepath.Join(j.Root, group, RosterFileName)
}

// SubjectPath путь к журналу предмета группы
func (j *Journals) SubjectPath(group, subject string) string {
	return filepath.Join(j.Root, group, subject+".xlsx")
}
