package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gradebook/internal/config"
	"gradebook/internal/container"
)

// app общие флаги и контейнер, созданный перед выполнением команды
type app struct {
	envFile      string
	journalsPath string
	resultFolder string
	logLevel     string

	container *container.Container
}

// NewRootCommand собирает команду gradebook; без подкоманды запускается меню
func NewRootCommand(in io.Reader) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gradebook",
		Short:         "Аттестации и выгрузки по журналам успеваемости",
		Long:          "Читает журналы групп (xlsx), формирует месячные аттестации, ищет студентов по ФИО и выгружает оценки в CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd, in)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.envFile, "env-file", "", "файл переменных окружения (по умолчанию .env)")
	f.StringVar(&a.journalsPath, "journals", "", "папка журналов курса")
	f.StringVar(&a.resultFolder, "result", "", "папка для итоговых файлов")
	f.StringVar(&a.logLevel, "log-level", "", "уровень логирования (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(newMenuCommand(a, in))
	root.AddCommand(newAssessCommand(a))
	root.AddCommand(newSearchCommand(a))
	root.AddCommand(newExportCommand(a))
	root.AddCommand(newGenerateCommand(a))
	root.AddCommand(newConfigCommand(a))

	return root
}

// init загружает конфигурацию, применяет флаги и создает контейнер
func (a *app) init(cmd *cobra.Command) error {
	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.journalsPath != "" {
		cfg.JournalsPath = a.journalsPath
	}
	if a.resultFolder != "" {
		cfg.ResultFolder = a.resultFolder
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	c, err := container.NewContainer(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := c.Initialize(); err != nil {
		return err
	}
	a.container = c
	return nil
}

func (a *app) runMenu(cmd *cobra.Command, in io.Reader) error {
	cfg := a.container.Config
	menu := NewMenu(a.container.Service, in, cmd.OutOrStdout(), cfg.AcademicYear, cfg.SearchThreshold)
	return menu.Run(cmd.Context())
}

func newMenuCommand(a *app, in io.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Интерактивное меню",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd, in)
		},
	}
}
