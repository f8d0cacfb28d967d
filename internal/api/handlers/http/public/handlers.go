package public

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Zones interface {
	Active(ctx context.Context) []domain.Zone
	Assess(ctx context.Context, p orb.Point) ([]domain.ZoneMatch, error)
	Nearest(ctx context.Context, p orb.Point) (domain.ZoneMatch, error)
	Classify(ctx context.Context, zoneID uuid.UUID, p orb.Point) (domain.ZoneMatch, error)
}

type Tracker interface {
	ProcessPing(ctx context.Context, ping domain.LocationPing) (domain.PingResponse, error)
}

type PingQueue interface {
	Submit(ping domain.LocationPing) error
}

type Entities interface {
	Register(ctx context.Context, req domain.RegisterEntityRequest) (domain.RegisterEntityResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TrackedEntity, error)
}

type Handler struct {
	logger   *slog.Logger
	Zones    Zones
	Tracker  Tracker
	Queue    PingQueue
	Entities Entities
}

func NewHandler(logger *slog.Logger, zones Zones, tracker Tracker, queue PingQueue, entities Entities) *Handler {
	return &Handler{
		logger:   logger,
		Zones:    zones,
		Tracker:  tracker,
		Queue:    queue,
		Entities: entities,
	}
}

func (h *Handler) PublicEntityRegister(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.RegisterEntityRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	resp, err := h.Entities.Register(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("entity registered",
		slog.String("id", resp.Entity.ID.String()),
		slog.String("role", string(resp.Entity.Role)),
		slog.Int("events", len(resp.Events)),
	)
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) PublicEntityGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	ent, err := h.Entities.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ent)
}

func (h *Handler) PublicLocationPing(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	ping, ok := h.bindPing(w, r)
	if !ok {
		return
	}

	resp, err := h.Tracker.ProcessPing(r.Context(), ping)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Debug("ping processed",
		slog.String("entity_id", ping.EntityID.String()),
		slog.Int("events", len(resp.Events)),
		slog.Int("zones", len(resp.Zones)),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PublicLocationPingAsync(w http.ResponseWriter, r *http.Request) {
	ping, ok := h.bindPing(w, r)
	if !ok {
		return
	}

	if err := h.Queue.Submit(ping); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// PublicZonesList lists active zones. With ?lng=&lat= it returns only the zones containing
// that point, nearest first, each with its tier.
func (h *Handler) PublicZonesList(w http.ResponseWriter, r *http.Request) {
	p, has, err := queryPoint(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if !has {
		zones := h.Zones.Active(r.Context())
		if zones == nil {
			zones = []domain.Zone{}
		}
		h.writeJSON(w, http.StatusOK, map[string]any{"zones": zones, "total": len(zones)})
		return
	}

	matches, err := h.Zones.Assess(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.ZoneMatch{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"location": p, "zones": matches, "total": len(matches)})
}

func (h *Handler) PublicZoneNearest(w http.ResponseWriter, r *http.Request) {
	p, ok := h.requirePoint(w, r)
	if !ok {
		return
	}

	m, err := h.Zones.Nearest(r.Context(), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, m)
}

func (h *Handler) PublicZoneClassify(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	p, ok := h.requirePoint(w, r)
	if !ok {
		return
	}

	m, err := h.Zones.Classify(r.Context(), id, p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, m)
}

func (h *Handler) bindPing(w http.ResponseWriter, r *http.Request) (domain.LocationPing, bool) {
	var req domain.PingRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return domain.LocationPing{}, false
	}

	// validated as a UUID by BindJSON
	id := uuid.MustParse(req.EntityID)
	ping := domain.LocationPing{EntityID: id, Location: *req.Location}
	if req.Timestamp != nil {
		ping.RecordedAt = req.Timestamp.UTC().Truncate(time.Microsecond)
	}
	return ping, true
}
