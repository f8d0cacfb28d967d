package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Zones interface {
	Create(ctx context.Context, req domain.CreateZoneRequest) (*domain.Zone, error)
	List(ctx context.Context, page, limit int, includeInactive bool) ([]*domain.Zone, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Zone, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateZoneRequest) (*domain.Zone, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Zone, []domain.MembershipEvent, error)
	Reset(ctx context.Context) (int64, error)
	EntitiesInZone(ctx context.Context, id uuid.UUID) ([]*domain.TrackedEntity, error)
	Alert(ctx context.Context, id uuid.UUID, message string) (int, error)
	Export(ctx context.Context) (*geojson.FeatureCollection, error)
}

type Resources interface {
	Adjust(ctx context.Context, zoneID uuid.UUID, kind domain.ResourceKind, delta int64) (int64, error)
	SetAll(ctx context.Context, zoneID uuid.UUID, res domain.Resources) error
	Get(ctx context.Context, zoneID uuid.UUID) (domain.Resources, error)
	Aggregate(ctx context.Context, zoneIDs []uuid.UUID) (domain.Resources, error)
}

type Entities interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error
	Assign(ctx context.Context, volunteerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
	Unassign(ctx context.Context, volunteerID, userID uuid.UUID) ([]uuid.UUID, error)
}

type Stats interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.PingStats, error)
}

type Handler struct {
	logger    *slog.Logger
	Zones     Zones
	Resources Resources
	Entities  Entities
	Stats     Stats
}

func NewHandler(logger *slog.Logger, zones Zones, resources Resources, entities Entities, stats Stats) *Handler {
	return &Handler{
		logger:    logger,
		Zones:     zones,
		Resources: resources,
		Entities:  entities,
		Stats:     stats,
	}
}

func (h *Handler) AdminZoneCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminZoneCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateZoneRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("creating zone",
		slog.String("kind", req.Kind),
		slog.Float64("lng", req.Center.Lon()),
		slog.Float64("lat", req.Center.Lat()),
		slog.Float64("radius_km", req.RadiusKM),
	)

	zone, err := h.Zones.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone created", slog.String("id", zone.ID.String()))
	h.writeJSON(w, http.StatusCreated, zone)
}

func (h *Handler) AdminZoneList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminZoneList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()
	page := max(parseInt(q.Get("page"), 1), 1)
	limit := parseInt(q.Get("limit"), 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}
	includeInactive := parseBool(q.Get("include_inactive"))

	zones, total, err := h.Zones.List(r.Context(), page, limit, includeInactive)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if zones == nil {
		zones = []*domain.Zone{}
	}

	l.Info("zones listed", slog.Int("count", len(zones)), slog.Int64("total", total))
	h.writeJSON(w, http.StatusOK, domain.ListZonesResponse{
		Zones: zones,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *Handler) AdminZoneGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	zone, err := h.Zones.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, zone)
}

func (h *Handler) AdminZoneUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminZoneUpdate", slog.String("remote", r.RemoteAddr))

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateZoneRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	zone, err := h.Zones.Update(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone updated", slog.String("id", id.String()), slog.Int64("version", zone.Version))
	h.writeJSON(w, http.StatusOK, zone)
}

func (h *Handler) AdminZoneDeactivate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminZoneDeactivate", slog.String("remote", r.RemoteAddr))

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	zone, events, err := h.Zones.Deactivate(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.MembershipEvent{}
	}

	l.Info("zone deactivated", slog.String("id", id.String()), slog.Int("exited", len(events)))
	h.writeJSON(w, http.StatusOK, domain.DeactivateZoneResponse{Zone: zone, Events: events})
}

func (h *Handler) AdminZonesReset(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	n, err := h.Zones.Reset(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Warn("all zones deleted", slog.Int64("deleted", n))
	h.writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *Handler) AdminZonesExport(w http.ResponseWriter, r *http.Request) {
	fc, err := h.Zones.Export(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", `attachment; filename="zones.geojson"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) AdminZoneAlert(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.AlertZoneRequest
	if r.ContentLength != 0 {
		if err := middleware.BindJSON(w, r, &req); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	n, err := h.Zones.Alert(r.Context(), id, req.Message)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone alert queued", slog.String("id", id.String()), slog.Int("notified", n))
	h.writeJSON(w, http.StatusAccepted, domain.AlertZoneResponse{ZoneID: id, Notified: n})
}

func (h *Handler) AdminZoneEntities(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	ents, err := h.Zones.EntitiesInZone(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if ents == nil {
		ents = []*domain.TrackedEntity{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"zone_id":  id,
		"entities": ents,
		"total":    len(ents),
	})
}

func (h *Handler) AdminZoneResourcesGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.Resources.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"zone_id": id, "resources": res})
}

func (h *Handler) AdminZoneResourcesAdjust(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.AdjustResourceRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	total, err := h.Resources.Adjust(r.Context(), id, req.Kind, req.Delta)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("resource adjusted",
		slog.String("zone_id", id.String()),
		slog.String("kind", string(req.Kind)),
		slog.Int64("delta", req.Delta),
		slog.Int64("total", total),
	)
	h.writeJSON(w, http.StatusOK, domain.AdjustResourceResponse{ZoneID: id, Kind: req.Kind, Total: total})
}

func (h *Handler) AdminZoneResourcesSet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.SetResourcesRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Resources.SetAll(r.Context(), id, req.Resources); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("resources replaced", slog.String("zone_id", id.String()), slog.Int("kinds", len(req.Resources)))
	h.writeJSON(w, http.StatusOK, map[string]any{"zone_id": id, "resources": req.Resources})
}

func (h *Handler) AdminResourcesAggregate(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query()["zone_id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	total, err := h.Resources.Aggregate(r.Context(), ids)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"zone_ids": ids, "resources": total})
}

func (h *Handler) AdminEntityStatus(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateStatusRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Entities.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("entity status updated", slog.String("id", id.String()), slog.String("status", string(req.Status)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminVolunteerAssign(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.AssignRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	assigned, err := h.Entities.Assign(r.Context(), id, req.UserIDs)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("volunteer assigned", slog.String("volunteer_id", id.String()), slog.Int("assignments", len(assigned)))
	h.writeJSON(w, http.StatusOK, assignmentsBody(id, assigned))
}

func (h *Handler) AdminVolunteerUnassign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userID")
	if !ok {
		return
	}

	assigned, err := h.Entities.Unassign(r.Context(), id, userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, assignmentsBody(id, assigned))
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Stats.Dashboard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, d)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	req, err := parseStatsRequest(r)
	if err != nil {
		l.Warn("invalid stats query", slog.String("query", r.URL.RawQuery), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("stats success", slog.Int("minutes", stats.Minutes))
	h.writeJSON(w, http.StatusOK, stats)
}
