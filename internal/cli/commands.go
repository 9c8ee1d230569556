package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gradebook/generator"
	"gradebook/internal/apperrors"
	"gradebook/internal/domain/calendar"
	"gradebook/internal/domain/journal"
)

// filterFromFlags строит фильтр по датам из --month или --from/--to
func filterFromFlags(year, month int, from, to string) (journal.DateFilter, error) {
	if month != 0 && (from != "" || to != "") {
		return journal.DateFilter{}, apperrors.NewValidationError("укажите либо --month, либо --from/--to", nil)
	}
	if month != 0 {
		return journal.MonthFilter(year, month)
	}
	if from == "" && to == "" {
		return journal.NoFilter(), nil
	}
	if from == "" || to == "" {
		return journal.DateFilter{}, apperrors.NewValidationError("для периода нужны обе даты: --from и --to", nil)
	}
	start, ok := calendar.ParseDate(from)
	if !ok {
		return journal.DateFilter{}, apperrors.NewValidationError(fmt.Sprintf("некорректная дата: %q", from), nil)
	}
	end, ok := calendar.ParseDate(to)
	if !ok {
		return journal.DateFilter{}, apperrors.NewValidationError(fmt.Sprintf("некорректная дата: %q", to), nil)
	}
	return journal.RangeFilter(start, end)
}

func newAssessCommand(a *app) *cobra.Command {
	var (
		month    int
		year     int
		from, to string
		summary  bool
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Сформировать аттестацию всех групп",
		Long:  "Без флагов аттестация строится по всем датам журналов. --month ограничивает рабочими днями месяца, --from/--to задают период включительно.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.container.Config
			if year == 0 {
				year = cfg.AcademicYear
			}
			filter, err := filterFromFlags(year, month, from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := a.container.Service.Assess(cmd.Context(), filter)
			if err != nil {
				return err
			}
			successColor.Fprintf(out, "Аттестация %s создана: %s\n", filter.Describe(), result.Path)

			if summary {
				renderSummary(out, result.Reports)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&month, "month", 0, "номер месяца (1-12)")
	f.IntVar(&year, "year", 0, "год (по умолчанию из конфигурации)")
	f.StringVar(&from, "from", "", "начало периода, ДД.ММ.ГГГГ")
	f.StringVar(&to, "to", "", "конец периода, ДД.ММ.ГГГГ")
	f.BoolVar(&summary, "summary", false, "вывести итоговые показатели групп")
	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	var (
		threshold float64
		grades    bool
	)
	cmd := &cobra.Command{
		Use:   "search <ФИО>",
		Short: "Нечеткий поиск студента по ФИО",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.container.Config.SearchThreshold
			}
			service := a.container.Service
			out := cmd.OutOrStdout()

			matches, err := service.Search(strings.Join(args, " "), threshold)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return apperrors.NewNotFoundError("Студенты не найдены", nil)
			}
			renderMatches(out, matches)

			if grades {
				best := matches[0]
				history, err := service.StudentGrades(best.Group, best.FullName, journal.NoFilter())
				if err != nil {
					return err
				}
				renderStudent(out, history)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "порог схожести 0..1 (по умолчанию из конфигурации)")
	cmd.Flags().BoolVar(&grades, "grades", false, "показать оценки лучшего совпадения")
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузки оценок",
	}

	var simple bool
	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Выгрузить оценки всех студентов в CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := a.container.Service
			export := service.ExportDetailedCSV
			if simple {
				export = service.ExportSimpleCSV
			}
			path, err := export(cmd.Context())
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "CSV создан: %s\n", path)
			return nil
		},
	}
	csvCmd.Flags().BoolVar(&simple, "simple", false, "только средние баллы и общее число пропусков")
	cmd.AddCommand(csvCmd)
	return cmd
}

func newGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Тестовые данные: списки групп, журналы, оценки",
	}

	var (
		dir    string
		groups []string
	)
	roster := &cobra.Command{
		Use:   "roster",
		Short: "Создать книгу со списками групп",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(groups) == 0 {
				groups = generator.DefaultGroups
			}
			path, err := a.container.Generator.GenerateRosterBook(dir, groups)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Списки групп созданы: %s\n", path)
			return nil
		},
	}
	roster.Flags().StringVar(&dir, "dir", ".", "папка для книги")
	roster.Flags().StringSliceVar(&groups, "groups", nil, "группы через запятую")

	journals := &cobra.Command{
		Use:   "journals <книга списков>",
		Short: "Создать папки групп с журналами по книге списков",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.container.Config.JournalsPath
			count, err := a.container.Generator.BootstrapJournals(args[0], root, journal.Subjects)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Создано групп: %d в %s\n", count, root)
			return nil
		},
	}

	var month, year int
	grades := &cobra.Command{
		Use:   "grades",
		Short: "Заполнить журналы оценками за месяц",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = a.container.Config.AcademicYear
			}
			root := a.container.Config.JournalsPath
			stats, err := a.container.Generator.FillGrades(root, year, month)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(),
				"Заполнено журналов: %d, студентов: %d, отметок: %d, пропусков: %d\n",
				stats.Files, stats.Students, stats.Marks, stats.Absences)
			return nil
		},
	}
	grades.Flags().IntVar(&month, "month", 9, "номер месяца (1-12)")
	grades.Flags().IntVar(&year, "year", 0, "год (по умолчанию из конфигурации)")

	cmd.AddCommand(roster, journals, grades)
	return cmd
}

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Показать действующую конфигурацию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.container.Config
			out := cmd.OutOrStdout()
			titleColor.Fprintln(out, "=== Конфигурация ===")
			fmt.Fprintf(out, "  Папка журналов: %s\n", cfg.JournalsPath)
			fmt.Fprintf(out, "  Папка результатов: %s\n", cfg.ResultFolder)
			fmt.Fprintf(out, "  Учебный год: %d\n", cfg.AcademicYear)
			fmt.Fprintf(out, "  Порог поиска: %.2f\n", cfg.SearchThreshold)
			fmt.Fprintf(out, "  Уровень логирования: %s\n", cfg.LogLevel)
			if cfg.Seed != 0 {
				fmt.Fprintf(out, "  Seed генератора: %d\n", cfg.Seed)
			} else {
				fmt.Fprintln(out, "  Seed генератора: случайный")
			}
			successColor.Fprintln(out, "✅ Валидация пройдена успешно")
			return nil
		},
	}
}
