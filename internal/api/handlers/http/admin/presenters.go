package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"disasterAlert/internal/api/handlers/http/respond"
	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := respond.Status(err)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	}
	if status >= http.StatusInternalServerError {
		h.log(r).Error("handler error", attrs...)
	} else {
		h.log(r).Warn("request rejected", attrs...)
	}

	h.writeJSON(w, status, respond.ErrorBody{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	respond.JSON(w, h.logger, code, v)
}

// pathID parses a UUID URL parameter, answering 400 itself when it is malformed.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String(param, raw), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, respond.ErrorBody{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func parseStatsRequest(r *http.Request) (domain.StatsRequest, error) {
	q := r.URL.Query()
	req := domain.StatsRequest{Minutes: 60}

	if s := q.Get("minutes"); s != "" {
		minutes, err := strconv.Atoi(s)
		if err != nil || minutes <= 0 || minutes > 1440 {
			return req, errors.New("minutes must be 1-1440")
		}
		req.Minutes = minutes
	}
	if s := q.Get("zone_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return req, errors.New("zone_id must be a UUID")
		}
		req.ZoneID = &id
	}
	return req, nil
}

// parseIDs accepts repeated and comma-separated zone_id values.
func parseIDs(values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("zone_id %q: %w", s, e.ErrInvalidInput)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("zone_id required: %w", e.ErrInvalidInput)
	}
	return ids, nil
}

func assignmentsBody(volunteerID uuid.UUID, assigned []uuid.UUID) map[string]any {
	if assigned == nil {
		assigned = []uuid.UUID{}
	}
	status := domain.StatusAvailable
	if len(assigned) > 0 {
		status = domain.StatusAssigned
	}
	return map[string]any{
		"volunteer_id": volunteerID,
		"assignments":  assigned,
		"status":       status,
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
