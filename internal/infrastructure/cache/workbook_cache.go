package cache

import (
	"errors"
	"log/slog"
	"os"

	"gradebook/internal/domain/journal"
)

// Opener читает рабочую книгу с диска
type Opener interface {
	Open(path string) (*journal.Workbook, error)
}

// LoadStatus результат загрузки книги
type LoadStatus int

const (
	// StatusLoaded книга прочитана
	StatusLoaded LoadStatus = iota
	// StatusAbsent файла нет
	StatusAbsent
	// StatusMalformed файл есть, но прочитать его не удалось
	StatusMalformed
)

// String возвращает название статуса для логов
func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusAbsent:
		return "absent"
	default:
		return "malformed"
	}
}

// LoadResult книга или причина ее отсутствия
type LoadResult struct {
	Workbook *journal.Workbook
	Status   LoadStatus
	Err      error
}

// Sheet возвращает активный лист или nil, если книга не загружена
func (r LoadResult) Sheet() *journal.Sheet {
	if r.Status != StatusLoaded || r.Workbook == nil {
		return nil
	}
	return r.Workbook.Sheet
}

// WorkbookCache кэш книг и списков студентов на время одного формирования отчета
// Не предназначен для одновременного использования из нескольких горутин
type WorkbookCache struct {
	journals  *journal.Journals
	opener    Opener
	logger    *slog.Logger
	workbooks map[string]LoadResult
	rosters   map[string][]string
}

// NewWorkbookCache создает пустой кэш
func NewWorkbookCache(journals *journal.Journals, opener Opener, logger *slog.Logger) *WorkbookCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookCache{
		journals:  journals,
		opener:    opener,
		logger:    logger,
		workbooks: make(map[string]LoadResult),
		rosters:   make(map[string][]string),
	}
}

// Journals возвращает описание папки журналов
func (c *WorkbookCache) Journals() *journal.Journals {
	return c.journals
}

// Load возвращает книгу из кэша, при первом обращении читает файл
// Ошибки чтения не возвращаются, а запоминаются в статусе результата
func (c *WorkbookCache) Load(path string) LoadResult {
	if result, exists := c.workbooks[path]; exists {
		return result
	}

	result := c.read(path)
	c.workbooks[path] = result
	return result
}

func (c *WorkbookCache) read(path string) LoadResult {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("Workbook not found", "path", path)
			return LoadResult{Status: StatusAbsent, Err: err}
		}
		c.logger.Error("Failed to stat workbook", "path", path, "error", err)
		return LoadResult{Status: StatusMalformed, Err: err}
	}

	wb, err := c.opener.Open(path)
	if err != nil {
		c.logger.Error("Failed to load workbook", "path", path, "error", err)
		return LoadResult{Status: StatusMalformed, Err: err}
	}
	return LoadResult{Workbook: wb, Status: StatusLoaded}
}

// Groups возвращает список групп из папки журналов
func (c *WorkbookCache) Groups() ([]string, error) {
	return c.journals.Groups()
}

// Roster возвращает ФИО студентов группы
// Учитываются строки, где заполнены фамилия, имя и отчество (столбцы 2-4)
func (c *WorkbookCache) Roster(group string) []string {
	if students, exists := c.rosters[group]; exists {
		return students
	}

	students := []string{}
	result := c.Load(c.journals.RosterPath(group))
	if sheet := result.Sheet(); sheet != nil {
		for row := 2; row <= sheet.MaxRow(); row++ {
			student := journal.Student{
				LastName:   sheet.Cell(row, 2).Raw,
				FirstName:  sheet.Cell(row, 3).Raw,
				Patronymic: sheet.Cell(row, 4).Raw,
			}
			if student.Complete() {
				students = append(students, student.FullName())
			}
		}
	} else {
		c.logger.Warn("Roster unavailable", "group", group, "status", result.Status.String())
	}

	c.rosters[group] = students
	return students
}

// Close закрывает все открытые книги и очищает кэш
func (c *WorkbookCache) Close() error {
	var errs []error
	for path, result := range c.workbooks {
		if result.Workbook == nil {
			continue
		}
		if err := result.Workbook.Close(); err != nil {
			c.logger.Warn("Failed to close workbook", "path", path, "error", err)
			errs = append(errs, err)
		}
	}
	clear(c.workbooks)
	clear(c.rosters)
	return errors.Join(errs...)
}

// Size количество закэшированных книг
func (c *WorkbookCache) Size() int {
	return len(c.workbooks)
}
