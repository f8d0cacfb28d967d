package public

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"disasterAlert/internal/api/handlers/http/respond"
	"disasterAlert/pkg/e"
	"disasterAlert/pkg/validator"
)

type pointQuery struct {
	Lng float64 `validate:"lng"`
	Lat float64 `validate:"lat"`
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := respond.Status(err)
	if status >= http.StatusInternalServerError {
		h.log(r).Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	} else {
		h.log(r).Debug("request rejected", slog.Int("status", status), slog.Any("error", err))
	}
	h.writeJSON(w, status, respond.ErrorBody{Error: msg})
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	respond.JSON(w, h.logger, code, v)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, respond.ErrorBody{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) requirePoint(w http.ResponseWriter, r *http.Request) (orb.Point, bool) {
	p, has, err := queryPoint(r)
	if err == nil && !has {
		err = fmt.Errorf("lng and lat query parameters required: %w", e.ErrInvalidInput)
	}
	if err != nil {
		h.handleError(w, r, err)
		return orb.Point{}, false
	}
	return p, true
}

// queryPoint reads ?lng=&lat=. Both or neither must be present.
func queryPoint(r *http.Request) (orb.Point, bool, error) {
	q := r.URL.Query()
	lngStr, latStr := q.Get("lng"), q.Get("lat")
	if lngStr == "" && latStr == "" {
		return orb.Point{}, false, nil
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return orb.Point{}, false, fmt.Errorf("lng %q: %w", lngStr, e.ErrInvalidCoordinate)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return orb.Point{}, false, fmt.Errorf("lat %q: %w", latStr, e.ErrInvalidCoordinate)
	}
	if err := validator.ValidateStruct(pointQuery{Lng: lng, Lat: lat}); err != nil {
		return orb.Point{}, false, fmt.Errorf("lng=%s lat=%s out of range: %w", lngStr, latStr, e.ErrInvalidCoordinate)
	}
	return orb.Point{lng, lat}, true, nil
}
