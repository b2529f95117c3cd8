package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error to the HTTP status it is reported with.
// Internal errors are checked first so a consistency failure is never shown as a caller error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInternal):
		return http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Caller errors carry their message; anything else is
// logged and answered with failMsg and the request id only.
func respondError(c *gin.Context, err error, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		body := gin.H{"error": failMsg}
		if id, ok := middleware.GetRequestIDFromCtx(c.Request.Context()); ok {
			body["requestID"] = id
		}
		c.JSON(status, body)
		return
	}
	logger.Warn(failMsg, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondBindError reports a request that could not be decoded or failed binding rules.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}
