package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"gradebook/internal/apperrors"
	"gradebook/internal/domain/attestation"
	"gradebook/normalization"
)

const ruler = "================================================================================"

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// UserMessage текст ошибки для пользователя
func UserMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Context != "" {
			return fmt.Sprintf("%s (%s)", appErr.UserMessage(), appErr.Context)
		}
		return appErr.UserMessage()
	}
	return err.Error()
}

func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "[ОШИБКА] %s\n", UserMessage(err))
}

func formatGrades(grades []float64) string {
	return strings.Join(lo.Map(grades, func(g float64, _ int) string {
		return strconv.FormatFloat(g, 'f', -1, 64)
	}), ", ")
}

// renderMatches таблица найденных студентов
func renderMatches(w io.Writer, matches []normalization.Match) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"№", "ФИО", "Группа", "Схожесть"})
	for i, m := range matches {
		table.Append([]string{
			strconv.Itoa(i + 1),
			m.FullName,
			m.Group,
			fmt.Sprintf("%.2f", m.Score),
		})
	}
	table.Render()
}

// renderStudent оценки и пропуски студента по предметам и общая статистика
func renderStudent(w io.Writer, history attestation.StudentHistory) {
	fmt.Fprintln(w, ruler)
	titleColor.Fprintf(w, "ОЦЕНКИ СТУДЕНТА: %s\n", history.FullName)
	fmt.Fprintf(w, "ГРУППА: %s\n", history.Group)
	fmt.Fprintln(w, ruler)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Предмет", "Оценки", "Средний балл", "Пропуски (часов)"})
	table.SetAutoWrapText(false)
	for _, subject := range history.Subjects {
		if len(subject.Grades) == 0 && subject.Absences == 0 {
			continue
		}
		average, absences := "-", "-"
		if len(subject.Grades) > 0 {
			average = strconv.Itoa(subject.Average)
		}
		if subject.Absences > 0 {
			absences = fmt.Sprintf("%d (%d)", subject.Absences, subject.Absences*attestation.HoursPerLesson)
		}
		table.Append([]string{subject.Subject, formatGrades(subject.Grades), average, absences})
	}
	table.Render()

	fmt.Fprintln(w, "ОБЩАЯ СТАТИСТИКА:")
	fmt.Fprintf(w, "   Всего оценок: %d\n", history.TotalGrades())
	fmt.Fprintf(w, "   Всего пропусков: %d (часов: %d)\n", history.Absences, history.AbsenceHours())
	fmt.Fprintf(w, "   Предметов с оценками: %d\n", history.SubjectsWithGrades())
	fmt.Fprintln(w, ruler)
}

// renderSummary итоговые показатели групп
func renderSummary(w io.Writer, reports []attestation.GroupReport) {
	if len(reports) == 0 {
		return
	}
	header := []string{"Показатель"}
	for _, r := range reports {
		header = append(header, r.Group)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for i, metric := range reports[0].Summary.Metrics() {
		row := []string{metric.Label}
		for _, r := range reports {
			row = append(row, strconv.FormatFloat(r.Summary.Metrics()[i].Value, 'f', -1, 64))
		}
		table.Append(row)
	}
	table.Render()
}
