package apperrors

import (
	"errors"
	"fmt"
)

// Kind категория ошибки приложения
type Kind int

const (
	// KindInternal непредвиденная ошибка, прерывает формирование отчета
	KindInternal Kind = iota
	// KindValidation некорректный ввод (месяц, дата, порог)
	KindValidation
	// KindNotFound отсутствует папка журналов, группа или файл
	KindNotFound
)

// String возвращает название категории для логов
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// AppError представляет ошибку приложения с категорией и контекстом
type AppError struct {
	Kind    Kind   // Категория ошибки
	Message string // Сообщение для пользователя
	Err     error  // Внутренняя ошибка для логов
	Context string // Дополнительный контекст (операция, параметры)
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// UserMessage возвращает сообщение для пользователя
func (e *AppError) UserMessage() string {
	return e.Message
}

// WithContext добавляет контекст к ошибке
func (e *AppError) WithContext(context string) *AppError {
	e.Context = context
	return e
}

// NewValidationError создает ошибку некорректного ввода
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError создает ошибку отсутствующего ресурса
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: message,
		Err:     err,
	}
}

// NewInternalError создает внутреннюю ошибку
// Пользователь видит общее сообщение, детали остаются в логах
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "Внутренняя ошибка",
		Err:     errors.Join(errors.New(message), err),
	}
}

// WrapError оборачивает существующую ошибку с контекстом
// Если ошибка уже AppError, сохраняет ее категорию. Иначе создает InternalError
func WrapError(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Kind:    appErr.Kind,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
			Context: appErr.Context,
		}
	}

	return NewInternalError(message, err)
}

// KindOf возвращает категорию ошибки; для посторонних ошибок KindInternal
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsValidation проверяет, что ошибка вызвана некорректным вводом
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// IsNotFound проверяет, что ошибка вызвана отсутствующим ресурсом
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
