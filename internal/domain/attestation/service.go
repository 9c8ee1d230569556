package attestation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"

	"gradebook/internal/apperrors"
	"gradebook/internal/domain/journal"
	"gradebook/internal/infrastructure/cache"
	"gradebook/normalization"
)

// ReportWriter записывает аттестацию групп в файл и возвращает его путь
type ReportWriter interface {
	WriteAssessment(reports []GroupReport, filter journal.DateFilter) (string, error)
}

// CSVWriter выгружает оценки студентов в CSV
type CSVWriter interface {
	WriteDetailed(reports []GroupReport, subjects []string) (string, error)
	WriteSimple(reports []GroupReport, subjects []string) (string, error)
}

// Service формирование аттестаций, поиск студентов и выгрузки
// Каждая операция работает со своим кэшем книг и закрывает его по завершении
type Service struct {
	journals *journal.Journals
	opener   cache.Opener
	reports  ReportWriter
	csv      CSVWriter
	subjects []string
	logger   *slog.Logger
}

// NewService создает сервис; пустой список предметов заменяется стандартным
func NewService(
	journals *journal.Journals,
	opener cache.Opener,
	reports ReportWriter,
	csv CSVWriter,
	subjects []string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(subjects) == 0 {
		subjects = journal.Subjects
	}
	return &Service{
		journals: journals,
		opener:   opener,
		reports:  reports,
		csv:      csv,
		subjects: subjects,
		logger:   logger,
	}
}

// Subjects список предметов
func (s *Service) Subjects() []string {
	return s.subjects
}

// run выполняет операцию со свежим кэшем; паника превращается во внутреннюю ошибку
func (s *Service) run(operation string, fn func(wc *cache.WorkbookCache, logger *slog.Logger) error) (err error) {
	logger := s.logger.With("run_id", uuid.NewString(), "operation", operation)
	wc := cache.NewWorkbookCache(s.journals, s.opener, logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Critical error", "panic", r, "stack", string(debug.Stack()))
			err = apperrors.NewInternalError(operation, fmt.Errorf("panic: %v", r))
		}
		if closeErr := wc.Close(); closeErr != nil {
			logger.Warn("Failed to release workbooks", "error", closeErr)
		}
		logger.Debug("Workbook cache released")
	}()

	return fn(wc, logger)
}

// collect формирует итоги всех групп за период
func (s *Service) collect(ctx context.Context, wc *cache.WorkbookCache, filter journal.DateFilter, logger *slog.Logger) ([]GroupReport, error) {
	groups, err := wc.Groups()
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, apperrors.NewNotFoundError("группы не найдены", nil).WithContext(s.journals.Root)
	}

	aggregator := NewAggregator(wc, s.subjects, logger)
	reports := make([]GroupReport, 0, len(groups))
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reports = append(reports, aggregator.ProcessGroup(group, filter))
	}
	return reports, nil
}

// Assessment записанная аттестация и итоги групп, из которых она построена
type Assessment struct {
	Path    string
	Reports []GroupReport
}

// Assess формирует книгу аттестации всех групп за один проход по журналам
func (s *Service) Assess(ctx context.Context, filter journal.DateFilter) (Assessment, error) {
	var result Assessment
	err := s.run("create_assessment", func(wc *cache.WorkbookCache, logger *slog.Logger) error {
		logger.Info("Creating assessment", "period", filter.Describe())

		reports, err := s.collect(ctx, wc, filter, logger)
		if err != nil {
			return err
		}

		path, err := s.reports.WriteAssessment(reports, filter)
		if err != nil {
			return apperrors.WrapError(err, "не удалось сохранить аттестацию")
		}

		logger.Info("Assessment created", "path", path, "groups", len(reports))
		result = Assessment{Path: path, Reports: reports}
		return nil
	})
	if err != nil {
		return Assessment{}, err
	}
	return result, nil
}

// CreateAssessment формирует книгу аттестации всех групп и возвращает путь к файлу
func (s *Service) CreateAssessment(ctx context.Context, filter journal.DateFilter) (string, error) {
	result, err := s.Assess(ctx, filter)
	return result.Path, err
}

// CollectGrades итоги всех групп без фильтра по датам (для выгрузок)
func (s *Service) CollectGrades(ctx context.Context) ([]GroupReport, error) {
	var reports []GroupReport
	err := s.run("collect_grades", func(wc *cache.WorkbookCache, logger *slog.Logger) error {
		var err error
		reports, err = s.collect(ctx, wc, journal.NoFilter(), logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ExportDetailedCSV выгрузка оценок, пропусков и средних по каждому предмету
func (s *Service) ExportDetailedCSV(ctx context.Context) (string, error) {
	reports, err := s.CollectGrades(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.csv.WriteDetailed(reports, s.subjects)
	if err != nil {
		return "", apperrors.WrapError(err, "не удалось сохранить CSV")
	}
	s.logger.Info("Detailed CSV exported", "path", path)
	return path, nil
}

// ExportSimpleCSV выгрузка средних баллов по предметам и общего среднего
func (s *Service) ExportSimpleCSV(ctx context.Context) (string, error) {
	reports, err := s.CollectGrades(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.csv.WriteSimple(reports, s.subjects)
	if err != nil {
		return "", apperrors.WrapError(err, "не удалось сохранить CSV")
	}
	s.logger.Info("Simple CSV exported", "path", path)
	return path, nil
}

// Search нечеткий поиск студентов по ФИО во всех группах
func (s *Service) Search(query string, threshold float64) ([]normalization.Match, error) {
	var matches []normalization.Match
	err := s.run("search", func(wc *cache.WorkbookCache, logger *slog.Logger) error {
		var err error
		matches, err = normalization.NewStudentMatcher(wc, logger).Search(query, threshold)
		return err
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// StudentGrades оценки и пропуски студента по всем предметам за период
func (s *Service) StudentGrades(group, fullName string, filter journal.DateFilter) (StudentHistory, error) {
	var history StudentHistory
	err := s.run("student_grades", func(wc *cache.WorkbookCache, logger *slog.Logger) error {
		report := NewAggregator(wc, s.subjects, logger).StudentReport(group, fullName, filter)
		history = StudentHistory{Group: group, StudentReport: report}
		return nil
	})
	return history, err
}
