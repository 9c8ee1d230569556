package attestation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"gradebook/internal/domain/journal"
)

// LessonRecord оценки, пропуски и число занятий студента по предмету за период
// Занятием считается любая непустая отметка: оценка или пропуск
type LessonRecord struct {
	Grades   []float64
	Absences int
	Lessons  int
}

// Average средний балл, округленный до целой оценки (0 - нет оценок)
func (r LessonRecord) Average() int {
	return AverageGrade(r.Grades)
}

// SubjectResult итог по одному предмету
type SubjectResult struct {
	Subject  string
	Grades   []float64
	Absences int
	Lessons  int
	Average  int
}

// Mean средний балл с округлением до places знаков (для CSV)
func (r SubjectResult) Mean(places int32) float64 {
	return MeanGrade(r.Grades, places)
}

// StudentReport итог студента по всем предметам
type StudentReport struct {
	FullName string
	Subjects []SubjectResult
	Absences int
	Lessons  int
}

// AbsenceHours пропуски в часах
func (s StudentReport) AbsenceHours() int {
	return s.Absences * HoursPerLesson
}

// Averages аттестационные оценки: средние по предметам, где есть оценки
func (s StudentReport) Averages() []int {
	return lo.FilterMap(s.Subjects, func(r SubjectResult, _ int) (int, bool) {
		return r.Average, r.Average != 0
	})
}

// GradeCount сколько предметов аттестовано на grade
func (s StudentReport) GradeCount(grade int) int {
	return lo.Count(s.Averages(), grade)
}

// Failing есть хотя бы одна "2" в аттестации
func (s StudentReport) Failing() bool {
	return s.GradeCount(2) > 0
}

// GoodAndExcellentOnly в аттестации только "4" и "5"
func (s StudentReport) GoodAndExcellentOnly() bool {
	return s.GradeCount(2) == 0 && s.GradeCount(3) == 0 &&
		(s.GradeCount(4) > 0 || s.GradeCount(5) > 0)
}

// AllGrades все оценки по всем предметам
func (s StudentReport) AllGrades() []float64 {
	return lo.FlatMap(s.Subjects, func(r SubjectResult, _ int) []float64 {
		return r.Grades
	})
}

// OverallMean общий средний балл по всем оценкам
func (s StudentReport) OverallMean(places int32) float64 {
	return MeanGrade(s.AllGrades(), places)
}

// TotalGrades общее количество оценок
func (s StudentReport) TotalGrades() int {
	return lo.SumBy(s.Subjects, func(r SubjectResult) int { return len(r.Grades) })
}

// SubjectsWithGrades число предметов, по которым есть оценки
func (s StudentReport) SubjectsWithGrades() int {
	return lo.CountBy(s.Subjects, func(r SubjectResult) bool {
		return len(r.Grades) > 0
	})
}

// Subject возвращает итог по предмету
func (s StudentReport) Subject(name string) (SubjectResult, bool) {
	return lo.Find(s.Subjects, func(r SubjectResult) bool {
		return r.Subject == name
	})
}

// StudentHistory оценки выбранного студента (результат поиска)
type StudentHistory struct {
	Group string
	StudentReport
}

// GroupSummary итоговые показатели группы
type GroupSummary struct {
	StudentCount         int
	FailingCount         int
	WithOneTwo           int
	WithOneThree         int
	WithOneFour          int
	WithOneFive          int
	GoodAndExcellentOnly int
	TotalAbsences        int
	TotalLessons         int

	AvgAbsenceHoursPerStudent float64
	AttendancePercent         float64
	SuccessPercent            float64
}

// Summarize вычисляет показатели группы по итогам студентов
func Summarize(students []StudentReport) GroupSummary {
	summary := GroupSummary{
		StudentCount:  len(students),
		FailingCount:  lo.CountBy(students, StudentReport.Failing),
		WithOneTwo:    lo.CountBy(students, withExactlyOne(2)),
		WithOneThree:  lo.CountBy(students, withExactlyOne(3)),
		WithOneFour:   lo.CountBy(students, withExactlyOne(4)),
		WithOneFive:   lo.CountBy(students, withExactlyOne(5)),
		TotalAbsences: lo.SumBy(students, func(s StudentReport) int { return s.Absences }),
		TotalLessons:  lo.SumBy(students, func(s StudentReport) int { return s.Lessons }),
	}
	summary.GoodAndExcellentOnly = lo.CountBy(students, StudentReport.GoodAndExcellentOnly)

	if summary.StudentCount > 0 {
		summary.AvgAbsenceHoursPerStudent = float64(summary.TotalAbsences*HoursPerLesson) /
			float64(summary.StudentCount)
		summary.SuccessPercent = percentOf(summary.StudentCount-summary.FailingCount, summary.StudentCount)
	}
	if summary.TotalLessons > 0 {
		summary.AttendancePercent = percentOf(summary.TotalLessons-summary.TotalAbsences, summary.TotalLessons)
	}
	return summary
}

func withExactlyOne(grade int) func(StudentReport) bool {
	return func(s StudentReport) bool {
		return s.GradeCount(grade) == 1
	}
}

// Metric строка итогового блока под аттестацией
type Metric struct {
	Label string
	Value float64
}

// Metrics десять показателей в порядке вывода в отчет
func (s GroupSummary) Metrics() []Metric {
	return []Metric{
		{"Неуспевающих, чел.", float64(s.FailingCount)},
		{"Студентов с одной '2', чел.", float64(s.WithOneTwo)},
		{"Студентов с одной '3', чел.", float64(s.WithOneThree)},
		{"Студентов с одной '4', чел.", float64(s.WithOneFour)},
		{"Студентов с одной '5', чел.", float64(s.WithOneFive)},
		{"Кол-во пропусков на 1 студента, часов", round1(decimal.NewFromFloat(s.AvgAbsenceHoursPerStudent))},
		{"Посещаемость, %", s.AttendancePercent},
		{"Учатся на 4 и 5, чел.", float64(s.GoodAndExcellentOnly)},
		{"Число студентов, чел.", float64(s.StudentCount)},
		{"Успеваемость, %", s.SuccessPercent},
	}
}

// GroupReport аттестация группы за период
type GroupReport struct {
	Group    string
	Filter   journal.DateFilter
	Students []StudentReport
	Summary  GroupSummary
}
