package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"gradebook/internal/apperrors"
)

// Значения по умолчанию
const (
	DefaultJournalsPath    = "Журналы/1 Курс"
	DefaultResultFolder    = "Итог"
	DefaultAcademicYear    = 2025
	DefaultSearchThreshold = 0.6
	DefaultLogLevel        = "INFO"
)

// Config конфигурация приложения
type Config struct {
	// Папка журналов курса: <JournalsPath>/<группа>/<предмет>.xlsx
	JournalsPath string
	// Папка для итоговых файлов
	ResultFolder string
	// Год первого семестра учебного года (месяцы 9–12)
	AcademicYear int
	// Порог нечеткого поиска студентов
	SearchThreshold float64
	// Уровень логирования
	LogLevel string
	// Seed генератора тестовых данных; 0 означает случайный
	Seed int64
}

// LoadConfig загружает конфигурацию из переменных окружения
// Без envFiles подставляется .env из текущей папки, если он есть
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		// Явно указанный файл обязателен, неявный .env может отсутствовать
		if len(envFiles) > 0 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("не удалось прочитать файл окружения %s", strings.Join(envFiles, ", ")), err)
		}
		if !os.IsNotExist(err) {
			log.Printf("Failed to read env file: %v", err)
		}
	}

	config := &Config{
		JournalsPath:    getEnv("GRADEBOOK_JOURNALS_PATH", DefaultJournalsPath),
		ResultFolder:    getEnv("GRADEBOOK_RESULT_FOLDER", DefaultResultFolder),
		AcademicYear:    getEnvInt("GRADEBOOK_ACADEMIC_YEAR", DefaultAcademicYear),
		SearchThreshold: getEnvFloat("GRADEBOOK_SEARCH_THRESHOLD", DefaultSearchThreshold),
		LogLevel:        getEnv("GRADEBOOK_LOG_LEVEL", DefaultLogLevel),
		Seed:            getEnvInt64("GRADEBOOK_SEED", 0),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
