package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"gradebook/internal/domain/attestation"
)

// utf8BOM метка порядка байтов, чтобы Excel распознал кодировку
const utf8BOM = "\uFEFF"

// meanPlaces знаков после запятой в средних баллах CSV
const meanPlaces = 2

// CSVWriter выгружает оценки студентов в CSV (UTF-8 с BOM)
type CSVWriter struct {
	resultFolder string
	now          func() time.Time
	logger       *slog.Logger
}

// NewCSVWriter создает писатель CSV в папку resultFolder
func NewCSVWriter(resultFolder string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{resultFolder: resultFolder, now: time.Now, logger: logger}
}

// DetailedHeader заголовок подробной выгрузки
func DetailedHeader(subjects []string) []string {
	header := []string{"Группа", "ФИО"}
	for _, subject := range subjects {
		header = append(header,
			subject+"_оценки",
			subject+"_пропуски",
			subject+"_средний_балл",
		)
	}
	return header
}

// SimpleHeader заголовок упрощенной выгрузки
func SimpleHeader(subjects []string) []string {
	header := append([]string{"Группа", "ФИО"}, subjects...)
	return append(header, "Общий_средний_балл", "Общее_количество_пропусков")
}

// WriteDetailed оценки через ";", пропуски и средний балл по каждому предмету
func (w *CSVWriter) WriteDetailed(reports []attestation.GroupReport, subjects []string) (string, error) {
	name := fmt.Sprintf("Оценки_студентов_%s.csv", w.now().Format(TimestampLayout))
	return w.write(name, DetailedHeader(subjects), reports, func(group string, s attestation.StudentReport) []string {
		record := []string{group, s.FullName}
		for _, subject := range subjects {
			result, _ := s.Subject(subject)
			record = append(record,
				joinGrades(result.Grades),
				strconv.Itoa(result.Absences),
				formatMean(result.Grades),
			)
		}
		return record
	})
}

// WriteSimple средние баллы по предметам, общий средний балл и всего пропусков
func (w *CSVWriter) WriteSimple(reports []attestation.GroupReport, subjects []string) (string, error) {
	name := fmt.Sprintf("Средние_баллы_%s.csv", w.now().Format(TimestampLayout))
	return w.write(name, SimpleHeader(subjects), reports, func(group string, s attestation.StudentReport) []string {
		record := []string{group, s.FullName}
		for _, subject := range subjects {
			result, _ := s.Subject(subject)
			record = append(record, formatMean(result.Grades))
		}
		return append(record, formatMean(s.AllGrades()), strconv.Itoa(s.Absences))
	})
}

func (w *CSVWriter) write(
	name string,
	header []string,
	reports []attestation.GroupReport,
	row func(group string, s attestation.StudentReport) []string,
) (string, error) {
	if err := ensureFolder(w.resultFolder); err != nil {
		return "", err
	}

	path := outputPath(w.resultFolder, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if _, err := buf.WriteString(utf8BOM); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(buf)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	rows := 0
	for _, report := range reports {
		for _, student := range report.Students {
			if err := writer.Write(row(report.Group, student)); err != nil {
				return "", fmt.Errorf("failed to write record: %w", err)
			}
			rows++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush file: %w", err)
	}

	w.logger.Info("CSV saved", "path", path, "rows", rows)
	return path, nil
}

// joinGrades оценки через ";"; целые без дробной части, дробные как есть
func joinGrades(grades []float64) string {
	return strings.Join(lo.Map(grades, func(g float64, _ int) string {
		return strconv.FormatFloat(g, 'f', -1, 64)
	}), ";")
}

// formatMean средний балл с двумя знаками; без оценок "0"
func formatMean(grades []float64) string {
	if len(grades) == 0 {
		return "0"
	}
	s := strconv.FormatFloat(attestation.MeanGrade(grades, meanPlaces), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
