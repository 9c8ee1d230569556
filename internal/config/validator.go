package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.JournalsPath) == "" {
		errors = append(errors, "journals path is required")
	}
	if strings.TrimSpace(c.ResultFolder) == "" {
		errors = append(errors, "result folder is required")
	}

	if c.AcademicYear < 1 || c.AcademicYear > 9999 {
		errors = append(errors, fmt.Sprintf("academic year must be between 1 and 9999, got %d", c.AcademicYear))
	}

	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		errors = append(errors, fmt.Sprintf("search threshold must be between 0 and 1, got %v", c.SearchThreshold))
	}

	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SlogLevel уровень логирования для slog; пустое значение означает INFO
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		JournalsPath:    DefaultJournalsPath,
		ResultFolder:    DefaultResultFolder,
		AcademicYear:    DefaultAcademicYear,
		SearchThreshold: DefaultSearchThreshold,
		LogLevel:        DefaultLogLevel,
	}
}
