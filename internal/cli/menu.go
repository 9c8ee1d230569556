package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gradebook/internal/apperrors"
	"gradebook/internal/domain/attestation"
	"gradebook/internal/domain/calendar"
	"gradebook/internal/domain/journal"
)

// Месяцы первого семестра, доступные в меню
var semesterMonths = []int{9, 10, 11, 12}

var errExit = errors.New("exit requested")

// Menu интерактивное меню: поиск студентов, аттестации и выгрузки
type Menu struct {
	service   *attestation.Service
	in        *bufio.Scanner
	lines     chan string
	readErr   error
	out       io.Writer
	year      int
	threshold float64
}

// NewMenu создает меню поверх сервиса аттестаций
func NewMenu(service *attestation.Service, in io.Reader, out io.Writer, year int, threshold float64) *Menu {
	return &Menu{
		service:   service,
		in:        bufio.NewScanner(in),
		out:       out,
		year:      year,
		threshold: threshold,
	}
}

// Run выполняет цикл меню до выбора 0, конца ввода или отмены контекста
func (m *Menu) Run(ctx context.Context) error {
	titleColor.Fprintln(m.out, "СИСТЕМА ПОИСКА СТУДЕНТОВ И ОЦЕНОК")
	fmt.Fprintln(m.out, strings.Repeat("=", 50))

	done := make(chan struct{})
	defer close(done)
	m.lines = make(chan string)
	go m.readLines(done)

	for {
		if ctx.Err() != nil {
			warnColor.Fprintln(m.out, "\nПрограмма завершена пользователем.")
			return nil
		}

		m.displayMenu()
		choice, ok := m.prompt(ctx, "\nВведите номер действия: ")
		if !ok {
			if ctx.Err() != nil {
				continue
			}
			return m.readErr
		}

		err := m.handle(ctx, choice)
		if errors.Is(err, errExit) {
			fmt.Fprintln(m.out, "\nДо свидания!")
			return nil
		}
		if errors.Is(err, context.Canceled) {
			continue
		}
		if err != nil {
			printError(m.out, err)
		}
	}
}

func (m *Menu) displayMenu() {
	fmt.Fprintln(m.out, "\nВыберите действие:")
	fmt.Fprintln(m.out, "1. Найти студента и показать оценки")
	fmt.Fprintln(m.out, "2. Создать аттестацию за весь период")
	fmt.Fprintln(m.out, "3. Создать месячную аттестацию за конкретный месяц")
	fmt.Fprintf(m.out, "4. Создать аттестации за все месяцы (сентябрь-декабрь %d)\n", m.year)
	fmt.Fprintln(m.out, "5. Создать аттестацию за период дат")
	fmt.Fprintln(m.out, "6. Выгрузить подробный CSV")
	fmt.Fprintln(m.out, "7. Выгрузить CSV со средними баллами")
	fmt.Fprintln(m.out, "0. Выход")
}

// readLines читает ввод в отдельной горутине, чтобы ожидание строки не блокировало отмену
func (m *Menu) readLines(done <-chan struct{}) {
	defer close(m.lines)
	for m.in.Scan() {
		select {
		case m.lines <- m.in.Text():
		case <-done:
			return
		}
	}
	m.readErr = m.in.Err()
}

// prompt выводит приглашение и ждет строку; false при конце ввода или отмене контекста
func (m *Menu) prompt(ctx context.Context, text string) (string, bool) {
	fmt.Fprint(m.out, text)
	select {
	case line, ok := <-m.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	case <-ctx.Done():
		return "", false
	}
}

func (m *Menu) handle(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.searchStudent(ctx)
	case "2":
		fmt.Fprintln(m.out, "\n[СОЗДАНИЕ] Аттестации за весь период...")
		return m.assess(ctx, journal.NoFilter())
	case "3":
		return m.assessMonth(ctx)
	case "4":
		return m.assessSemester(ctx)
	case "5":
		return m.assessRange(ctx)
	case "6":
		return m.report(m.service.ExportDetailedCSV(ctx))
	case "7":
		return m.report(m.service.ExportSimpleCSV(ctx))
	case "0":
		return errExit
	default:
		return apperrors.NewValidationError("Неверный выбор. Попробуйте снова.", nil)
	}
}

func (m *Menu) report(path string, err error) error {
	if err != nil {
		return err
	}
	successColor.Fprintf(m.out, "[УСПЕХ] Файл создан: %s\n", path)
	return nil
}

func (m *Menu) assess(ctx context.Context, filter journal.DateFilter) error {
	return m.report(m.service.CreateAssessment(ctx, filter))
}

func (m *Menu) searchStudent(ctx context.Context) error {
	query, ok := m.prompt(ctx, "\nВведите ФИО студента (можно не точно): ")
	if !ok {
		return nil
	}
	if query == "" {
		return apperrors.NewValidationError("Введите ФИО студента.", nil)
	}

	fmt.Fprintf(m.out, "\n[ПОИСК] Студента: '%s'\n", query)
	matches, err := m.service.Search(query, m.threshold)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return apperrors.NewNotFoundError("Студенты не найдены. Попробуйте изменить поисковый запрос.", nil)
	}

	fmt.Fprintf(m.out, "\n[НАЙДЕНО] Студентов: %d\n", len(matches))
	renderMatches(m.out, matches)

	chosen := matches[0]
	if len(matches) > 1 {
		answer, ok := m.prompt(ctx, fmt.Sprintf("\nВыберите номер студента (1-%d) или 0 для выхода: ", len(matches)))
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			return apperrors.NewValidationError("Введите корректный номер.", nil)
		}
		if n == 0 {
			fmt.Fprintln(m.out, "Поиск отменен.")
			return nil
		}
		if n < 1 || n > len(matches) {
			return apperrors.NewValidationError("Неверный номер.", nil)
		}
		chosen = matches[n-1]
	}

	history, err := m.service.StudentGrades(chosen.Group, chosen.FullName, journal.NoFilter())
	if err != nil {
		return err
	}
	renderStudent(m.out, history)
	return nil
}

func (m *Menu) assessMonth(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nВыберите месяц для создания аттестации:")
	for _, month := range semesterMonths {
		fmt.Fprintf(m.out, "%d. %s %d\n", month, calendar.MonthName(month), m.year)
	}
	answer, ok := m.prompt(ctx, "Введите номер месяца (9-12): ")
	if !ok {
		return nil
	}
	month, err := strconv.Atoi(answer)
	if err != nil {
		return apperrors.NewValidationError("Введите корректный номер месяца.", nil)
	}
	if month < 9 || month > 12 {
		return apperrors.NewValidationError("Неверный номер месяца. Введите число от 9 до 12.", nil)
	}

	filter, err := journal.MonthFilter(m.year, month)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\n[СОЗДАНИЕ] Аттестации %s...\n", filter.Describe())
	return m.assess(ctx, filter)
}

func (m *Menu) assessSemester(ctx context.Context) error {
	fmt.Fprintf(m.out, "\n[СОЗДАНИЕ] Аттестаций за все месяцы (сентябрь-декабрь %d)...\n", m.year)
	created := 0
	for _, month := range semesterMonths {
		filter, err := journal.MonthFilter(m.year, month)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Создаем аттестацию %s...\n", filter.Describe())
		path, err := m.service.CreateAssessment(ctx, filter)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			errorColor.Fprintf(m.out, "✗ Ошибка при создании аттестации %s: %s\n", filter.Describe(), UserMessage(err))
			continue
		}
		created++
		successColor.Fprintf(m.out, "✓ Аттестация %s создана: %s\n", filter.Describe(), path)
	}
	fmt.Fprintf(m.out, "\n[РЕЗУЛЬТАТ] Создано аттестаций: %d из %d\n", created, len(semesterMonths))
	return nil
}

func (m *Menu) assessRange(ctx context.Context) error {
	fromText, ok := m.prompt(ctx, "\nДата начала (ДД.ММ.ГГГГ): ")
	if !ok {
		return nil
	}
	from, valid := calendar.ParseDate(fromText)
	if !valid {
		return apperrors.NewValidationError(fmt.Sprintf("Некорректная дата: %q", fromText), nil)
	}
	toText, ok := m.prompt(ctx, "Дата окончания (ДД.ММ.ГГГГ): ")
	if !ok {
		return nil
	}
	to, valid := calendar.ParseDate(toText)
	if !valid {
		return apperrors.NewValidationError(fmt.Sprintf("Некорректная дата: %q", toText), nil)
	}

	filter, err := journal.RangeFilter(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\n[СОЗДАНИЕ] Аттестации %s...\n", filter.Describe())
	return m.assess(ctx, filter)
}
