// Package respond holds the JSON writing and error-to-status mapping shared by the HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"disasterAlert/pkg/e"
)

type ErrorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}

func Error(w http.ResponseWriter, logger *slog.Logger, code int, msg string) {
	JSON(w, logger, code, ErrorBody{Error: msg})
}

// Status maps a service error onto an HTTP status and a client-safe message.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrInvalidCoordinate):
		return http.StatusBadRequest, "invalid coordinate"
	case errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, e.ErrStalePing):
		return http.StatusConflict, "stale ping"
	case errors.Is(err, e.ErrUniqueViolation):
		return http.StatusConflict, "already exists"
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, e.ErrNegativeResult):
		return http.StatusUnprocessableEntity, "resource count would go negative"
	case errors.Is(err, e.ErrOutsideZone):
		return http.StatusUnprocessableEntity, "point outside zone"
	case errors.Is(err, e.ErrQueueFull):
		return http.StatusServiceUnavailable, "queue is full"
	case errors.Is(err, e.ErrDeadline):
		return http.StatusGatewayTimeout, "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
