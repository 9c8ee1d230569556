package attestation

import (
	"log/slog"

	"gradebook/internal/domain/journal"
)

// Aggregator собирает итоги студентов и групп по всем предметам
type Aggregator struct {
	source    Source
	extractor *Extractor
	subjects  []string
	logger    *slog.Logger
}

// NewAggregator создает агрегатор; пустой список предметов заменяется стандартным
func NewAggregator(source Source, subjects []string, logger *slog.Logger) *Aggregator {
	if len(subjects) == 0 {
		subjects = journal.Subjects
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		source:    source,
		extractor: NewExtractor(source),
		subjects:  subjects,
		logger:    logger,
	}
}

// Subjects список предметов в порядке столбцов отчета
func (a *Aggregator) Subjects() []string {
	return a.subjects
}

// StudentReport итог одного студента группы по всем предметам
func (a *Aggregator) StudentReport(group, student string, filter journal.DateFilter) StudentReport {
	report := StudentReport{
		FullName: student,
		Subjects: make([]SubjectResult, 0, len(a.subjects)),
	}
	for _, subject := range a.subjects {
		record := a.extractor.Extract(group, subject, student, filter)
		report.Subjects = append(report.Subjects, SubjectResult{
			Subject:  subject,
			Grades:   record.Grades,
			Absences: record.Absences,
			Lessons:  record.Lessons,
			Average:  record.Average(),
		})
		report.Absences += record.Absences
		report.Lessons += record.Lessons
	}
	return report
}

// ProcessGroup аттестация группы: итоги студентов в порядке списка и показатели группы
func (a *Aggregator) ProcessGroup(group string, filter journal.DateFilter) GroupReport {
	roster := a.source.Roster(group)
	if len(roster) == 0 {
		a.logger.Warn("Group has no students", "group", group)
	}
	students := make([]StudentReport, 0, len(roster))
	for _, name := range roster {
		students = append(students, a.StudentReport(group, name, filter))
	}

	report := GroupReport{
		Group:    group,
		Filter:   filter,
		Students: students,
		Summary:  Summarize(students),
	}
	a.logger.Debug("Group processed",
		"group", group,
		"students", report.Summary.StudentCount,
		"failing", report.Summary.FailingCount)
	return report
}
