package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/internal/presentation/http/middleware"
	"github.com/sangkips/sales-api/pkg/apperror"
)

// dayLayout is the query format of report and listing date bounds
const dayLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUsername extracts the caller's username from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString(middleware.ContextUsername)
}

// parseWindow turns inclusive yyyy-mm-dd bounds into a half-open window.
// Empty bounds leave that side open.
func parseWindow(from, to string) (repository.DateWindow, error) {
	var window repository.DateWindow
	var fieldErrors []apperror.FieldError

	if from != "" {
		day, err := time.Parse(dayLayout, from)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "from", Message: "from must be formatted as yyyy-mm-dd"})
		} else {
			window.From = &day
		}
	}
	if to != "" {
		day, err := time.Parse(dayLayout, to)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "to", Message: "to must be formatted as yyyy-mm-dd"})
		} else {
			end := day.AddDate(0, 0, 1)
			window.To = &end
		}
	}
	if len(fieldErrors) > 0 {
		return repository.DateWindow{}, apperror.NewValidationError(fieldErrors)
	}

	if window.From != nil && window.To != nil && !window.From.Before(*window.To) {
		return repository.DateWindow{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "to", Message: "to must not be before from"},
		})
	}
	return window, nil
}
