package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}

// respondServiceError maps store and validation errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrReminderNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTimestamp):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestNow returns the virtual time from ?at= when present, otherwise the
// wall clock.
func requestNow(c *gin.Context) (time.Time, bool) {
	at := c.Query("at")
	if at == "" {
		return time.Now(), true
	}

	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid at time format, expected RFC3339")
		return time.Time{}, false
	}

	slog.DebugContext(c.Request.Context(), "using virtual time",
		slog.Time("virtual_now", parsed),
	)
	return parsed, true
}
