package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/apperrors"
)

var envKeys = []string{
	"GRADEBOOK_JOURNALS_PATH",
	"GRADEBOOK_RESULT_FOLDER",
	"GRADEBOOK_ACADEMIC_YEAR",
	"GRADEBOOK_SEARCH_THRESHOLD",
	"GRADEBOOK_LOG_LEVEL",
	"GRADEBOOK_SEED",
}

// clearEnv сбрасывает переменные на время теста
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

// emptyEnvFile пустой файл окружения, чтобы не зависеть от .env в рабочей папке
func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestConfigLogLevelValidation(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantError bool
	}{
		{"Valid DEBUG", "DEBUG", false},
		{"Valid INFO", "INFO", false},
		{"Valid WARN", "WARN", false},
		{"Valid ERROR", "ERROR", false},
		{"Valid lowercase debug", "debug", false},
		{"Invalid value", "INVALID", true},
		{"Empty string", "", false},
		{"Mixed case", "DeBuG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			cfg.LogLevel = tt.logLevel

			err := cfg.Validate()
			assert.Equal(t, tt.wantError, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestConfigValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{AcademicYear: 0, SearchThreshold: 1.5, LogLevel: "LOUD"}

	err := cfg.Validate()
	require.Error(t, err)
	for _, part := range []string{"journals path", "result folder", "academic year", "search threshold", "invalid log level"} {
		assert.Contains(t, err.Error(), part)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(emptyEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, GetDefaults(), cfg)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEBOOK_JOURNALS_PATH", "/data/journals")
	t.Setenv("GRADEBOOK_ACADEMIC_YEAR", "2026")
	t.Setenv("GRADEBOOK_SEARCH_THRESHOLD", "0.75")
	t.Setenv("GRADEBOOK_LOG_LEVEL", "debug")
	t.Setenv("GRADEBOOK_SEED", "42")

	cfg, err := LoadConfig(emptyEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/data/journals", cfg.JournalsPath)
	assert.Equal(t, DefaultResultFolder, cfg.ResultFolder)
	assert.Equal(t, 2026, cfg.AcademicYear)
	assert.Equal(t, 0.75, cfg.SearchThreshold)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfig_MalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEBOOK_ACADEMIC_YEAR", "двадцать")
	t.Setenv("GRADEBOOK_SEARCH_THRESHOLD", "abc")

	cfg, err := LoadConfig(emptyEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultAcademicYear, cfg.AcademicYear)
	assert.Equal(t, DefaultSearchThreshold, cfg.SearchThreshold)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv не перезаписывает уже заданные переменные, поэтому ключ удаляется целиком
	require.NoError(t, os.Unsetenv("GRADEBOOK_RESULT_FOLDER"))
	t.Cleanup(func() { os.Unsetenv("GRADEBOOK_RESULT_FOLDER") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GRADEBOOK_RESULT_FOLDER=Отчеты\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Отчеты", cfg.ResultFolder)
}

func TestLoadConfig_InvalidThreshold(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEBOOK_SEARCH_THRESHOLD", "2")

	_, err := LoadConfig(emptyEnvFile(t))
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "опечатка.env"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "опечатка.env")
}

func TestLoadConfig_ImplicitEnvFileOptional(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaults(), cfg)
}
