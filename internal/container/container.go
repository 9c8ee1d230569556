package container

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"gradebook/generator"
	"gradebook/importer"
	"gradebook/internal/config"
	"gradebook/internal/domain/attestation"
	"gradebook/internal/domain/journal"
	"gradebook/report"
)

// Container контейнер зависимостей приложения
// Компоненты создаются один раз на процесс в Initialize
type Container struct {
	mu sync.RWMutex

	Config *config.Config
	Logger *slog.Logger

	Journals    *journal.Journals
	Opener      *importer.ExcelOpener
	ExcelWriter *report.ExcelWriter
	CSVWriter   *report.CSVWriter

	Service   *attestation.Service
	Generator *generator.Generator

	logOutput   io.Writer
	initialized bool
}

// NewContainer создает контейнер; логи пишутся в logOutput (по умолчанию stderr)
func NewContainer(cfg *config.Config, logOutput io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logOutput == nil {
		logOutput = os.Stderr
	}
	return &Container{
		Config:    cfg,
		logOutput: logOutput,
	}, nil
}

// Initialize инициализирует компоненты
func (c *Container) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return fmt.Errorf("container already initialized")
	}

	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.initLogger()
	c.initInfrastructure()
	c.initServices()

	c.initialized = true
	c.Logger.Debug("Container initialized",
		"journals_path", c.Config.JournalsPath,
		"result_folder", c.Config.ResultFolder,
	)
	return nil
}

func (c *Container) initLogger() {
	opts := &slog.HandlerOptions{
		Level: c.Config.SlogLevel(),
	}
	c.Logger = slog.New(slog.NewJSONHandler(c.logOutput, opts))
}

func (c *Container) initInfrastructure() {
	c.Journals = journal.NewJournals(c.Config.JournalsPath)
	c.Opener = importer.NewExcelOpener()
	c.ExcelWriter = report.NewExcelWriter(c.Config.ResultFolder, journal.Subjects, c.Logger)
	c.CSVWriter = report.NewCSVWriter(c.Config.ResultFolder, c.Logger)
}

func (c *Container) initServices() {
	c.Service = attestation.NewService(
		c.Journals,
		c.Opener,
		c.ExcelWriter,
		c.CSVWriter,
		journal.Subjects,
		c.Logger,
	)
	c.Generator = generator.New(c.Config.Seed, c.Logger)
}

// IsInitialized проверяет, инициализирован ли контейнер
func (c *Container) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}
