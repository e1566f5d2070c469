package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("update sale 7: %w", ErrStaleWrite)

	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, http.StatusConflict, GetAppError(wrapped).Code)
	assert.True(t, errors.Is(wrapped, ErrStaleWrite))

	plain := errors.New("connection refused")
	assert.False(t, IsAppError(plain))
	got := GetAppError(plain)
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.NotContains(t, got.Message, "connection refused")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "password", Message: "too short"}})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "Validation failed", err.Error())
}
