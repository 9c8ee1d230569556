package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorMessage(t *testing.T) {
	cause := errors.New("month 13")
	err := NewValidationError("неверный месяц", cause)

	assert.Equal(t, "неверный месяц: month 13", err.Error())
	assert.Equal(t, "неверный месяц", err.UserMessage())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "папка не найдена", NewNotFoundError("папка не найдена", nil).Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", NewValidationError("bad", nil), KindValidation},
		{"not found", NewNotFoundError("missing", nil), KindNotFound},
		{"internal", NewInternalError("boom", errors.New("x")), KindInternal},
		{"wrapped", fmt.Errorf("outer: %w", NewNotFoundError("missing", nil)), KindNotFound},
		{"plain error", errors.New("plain"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestNewInternalError_HidesDetails(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError("failed to save report", cause)

	assert.Equal(t, "Внутренняя ошибка", err.UserMessage())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save report")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "ctx"))

	wrapped := WrapError(NewValidationError("bad date", nil).WithContext("range"), "assessment")
	assert.Equal(t, KindValidation, wrapped.Kind)
	assert.Equal(t, "assessment: bad date", wrapped.Message)
	assert.Equal(t, "range", wrapped.Context)

	plain := WrapError(errors.New("io"), "assessment")
	assert.Equal(t, KindInternal, plain.Kind)

	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(nil))
}
