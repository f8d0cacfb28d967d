package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb/geojson"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/geo"
	"disasterAlert/internal/observability"
	"disasterAlert/pkg/e"
)

// boundarySlack widens radius queries so spheroid and haversine distances agree at the edge.
const boundarySlack = 1.01

type AdminService struct {
	repo      ZoneRepository
	entities  EntityRepository
	engine    *Engine
	cache     ZoneCache
	cacheTTL  time.Duration
	publisher EventPublisher
	queue     NotificationQueue
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *slog.Logger

	// mu serializes zone mutations with the registry swap in Refresh.
	mu sync.Mutex
	// generation is bumped on every local zone mutation so Refresh can tell
	// whether its load raced with one.
	generation atomic.Uint64
}

func NewAdminZoneService(
	repo ZoneRepository,
	entities EntityRepository,
	engine *Engine,
	cache ZoneCache,
	cacheTTL time.Duration,
	publisher EventPublisher,
	queue NotificationQueue,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		repo:      repo,
		entities:  entities,
		engine:    engine,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		queue:     queue,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *AdminService) Create(ctx context.Context, req domain.CreateZoneRequest) (*domain.Zone, error) {
	const op = "service.Zone.Create"

	if req.Center == nil {
		return nil, fmt.Errorf("%s: center: %w", op, e.ErrInvalidInput)
	}
	zone := &domain.Zone{
		Kind:        req.Kind,
		Description: req.Description,
		Center:      *req.Center,
		RadiusKM:    req.RadiusKM,
		Resources:   domain.DefaultResources(),
	}
	for k, v := range req.Resources {
		zone.Resources[k] = v
	}
	if err := validateZone(zone); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Create(ctx, zone); err != nil {
		return nil, err
	}

	s.engine.Registry.Put(zone.Clone())
	s.zonesChanged(ctx)

	s.logger.Info("zone created",
		slog.String("zone_id", zone.ID.String()),
		slog.String("kind", zone.Kind),
		slog.Float64("lng", zone.Center.Lon()),
		slog.Float64("lat", zone.Center.Lat()),
		slog.Float64("radius_km", zone.RadiusKM),
	)
	return zone, nil
}

func (s *AdminService) List(ctx context.Context, page, limit int, includeInactive bool) ([]*domain.Zone, int64, error) {
	return s.repo.List(ctx, page, limit, includeInactive)
}

func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*domain.Zone, error) {
	return s.repo.Get(ctx, id)
}

// Update patches an active zone. The registry swaps the zone in one step, so
// concurrent lookups never see the new radius with the old center.
func (s *AdminService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateZoneRequest) (*domain.Zone, error) {
	const op = "service.Zone.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	zone, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !zone.Active {
		return nil, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
	}

	if req.Kind != nil {
		zone.Kind = *req.Kind
	}
	if req.Description != nil {
		zone.Description = *req.Description
	}
	if req.Center != nil {
		zone.Center = *req.Center
	}
	if req.RadiusKM != nil {
		zone.RadiusKM = *req.RadiusKM
	}
	if err := validateZone(zone); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, err
	}

	s.engine.Registry.Put(zone.Clone())
	s.zonesChanged(ctx)
	return zone, nil
}

// Deactivate ends a zone and forces an Exited event for every entity inside it.
func (s *AdminService) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Zone, []domain.MembershipEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zone, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	s.engine.Registry.Deactivate(id)
	events := s.engine.Tracker.DeactivateZone(*zone, s.clock.Now().UTC())
	s.metrics.ObserveEvents(events)
	s.publish(ctx, events)
	s.zonesChanged(ctx)

	s.logger.Info("zone deactivated",
		slog.String("zone_id", id.String()),
		slog.Int("exited", len(events)),
	)
	return zone, events, nil
}

// Reset physically deletes every zone. Memberships are dropped without events.
func (s *AdminService) Reset(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.engine.Registry.Replace(nil)
	cleared := s.engine.Tracker.ClearMemberships()
	s.zonesChanged(ctx)

	s.logger.Warn("all zones deleted",
		slog.Int64("zones", n),
		slog.Int("memberships_cleared", cleared),
	)
	return n, nil
}

func (s *AdminService) EntitiesInZone(ctx context.Context, id uuid.UUID) ([]*domain.TrackedEntity, error) {
	zone, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.entitiesInside(ctx, *zone)
}

// entitiesInside asks Postgres for a slightly wider circle and keeps the entities the
// haversine membership rule puts inside the zone, so the answer matches the tracker.
func (s *AdminService) entitiesInside(ctx context.Context, zone domain.Zone) ([]*domain.TrackedEntity, error) {
	candidates, err := s.entities.WithinRadius(ctx, zone.Center, zone.RadiusKM*boundarySlack)
	if err != nil {
		return nil, err
	}
	inside := make([]*domain.TrackedEntity, 0, len(candidates))
	for _, ent := range candidates {
		if ent.Location == nil || geo.Classify(*ent.Location, zone) == domain.TierOutside {
			continue
		}
		inside = append(inside, ent)
	}
	return inside, nil
}

// Alert queues a notification for every entity currently inside an active zone.
func (s *AdminService) Alert(ctx context.Context, id uuid.UUID, message string) (int, error) {
	const op = "service.Zone.Alert"

	zone, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if !zone.Active {
		return 0, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
	}

	inside, err := s.entitiesInside(ctx, *zone)
	if err != nil {
		return 0, err
	}
	if len(inside) == 0 {
		return 0, nil
	}

	now := s.clock.Now().UTC()
	ns := make([]domain.Notification, 0, len(inside))
	for _, ent := range inside {
		tier := geo.Classify(*ent.Location, *zone)
		text := message
		if text == "" {
			text = fmt.Sprintf("Alert: you are inside a %s zone (%s danger)", zone.Kind, tier)
		}
		ns = append(ns, domain.Notification{
			ID:        uuid.New(),
			EntityID:  ent.ID,
			Contact:   ent.Contact,
			ZoneID:    zone.ID,
			Tier:      tier,
			Message:   text,
			CreatedAt: now,
		})
	}

	if err := s.queue.Enqueue(ctx, ns...); err != nil {
		s.logger.Error("enqueue alert failed", slog.String("op", op), slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("zone alert queued", slog.String("zone_id", id.String()), slog.Int("entities", len(ns)))
	return len(ns), nil
}

// Export renders every zone, active or not, as a GeoJSON FeatureCollection of center points.
func (s *AdminService) Export(ctx context.Context) (*geojson.FeatureCollection, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, z := range all {
		f := geojson.NewFeature(z.Center)
		f.ID = z.ID.String()
		f.Properties["kind"] = z.Kind
		f.Properties["description"] = z.Description
		f.Properties["radius_km"] = z.RadiusKM
		f.Properties["resources"] = z.Resources
		f.Properties["active"] = z.Active
		f.Properties["version"] = z.Version
		f.Properties["created_at"] = z.CreatedAt.UTC().Format(time.RFC3339)
		fc.Append(f)
	}
	return fc, nil
}

// Refresh reloads the active zone set, preferring the shared cache over Postgres.
// Zones that disappeared since the last load are cleared from the tracker with Exited events.
// A load that raced with a local zone mutation is dropped; the next refresh retries it.
func (s *AdminService) Refresh(ctx context.Context) error {
	const op = "service.Zone.Refresh"

	gen := s.generation.Load()
	active, fromRepo, err := s.loadActive(ctx, op)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation.Load() != gen {
		s.logger.Debug("zones changed during refresh, load discarded", slog.String("op", op))
		return nil
	}
	if fromRepo {
		if err := s.cache.SetActive(ctx, active, s.cacheTTL); err != nil {
			s.logger.Warn("zone cache write failed", slog.String("op", op), slog.Any("error", err))
		}
	}

	previous := s.engine.Registry.Active()
	s.engine.Registry.Replace(active)

	now := s.clock.Now().UTC()
	var events []domain.MembershipEvent
	for _, z := range previous {
		if cur, ok := s.engine.Registry.Get(z.ID); ok && cur.Active {
			continue
		}
		events = append(events, s.engine.Tracker.DeactivateZone(z, now)...)
	}
	s.metrics.ObserveEvents(events)
	s.publish(ctx, events)

	n, _ := s.engine.Registry.Len()
	s.metrics.ActiveZones.Set(float64(n))
	s.logger.Debug("zones refreshed", slog.Int("active", n), slog.Int("exited", len(events)))
	return nil
}

// loadActive reads the cached active set, falling back to Postgres on a miss. A cached set
// that lacks a zone this process holds is not trusted to drop it and is re-read from Postgres.
func (s *AdminService) loadActive(ctx context.Context, op string) ([]domain.Zone, bool, error) {
	active, err := s.cache.GetActive(ctx)
	if err != nil {
		s.logger.Warn("zone cache read failed", slog.String("op", op), slog.Any("error", err))
		active = nil
	}
	if active != nil && covers(active, s.engine.Registry.Active()) {
		return active, false, nil
	}

	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, false, err
	}
	active = make([]domain.Zone, 0, len(rows))
	for _, z := range rows {
		active = append(active, *z)
	}
	return active, true, nil
}

func covers(loaded, held []domain.Zone) bool {
	ids := make(map[uuid.UUID]struct{}, len(loaded))
	for _, z := range loaded {
		ids[z.ID] = struct{}{}
	}
	for _, z := range held {
		if _, ok := ids[z.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *AdminService) zonesChanged(ctx context.Context) {
	s.generation.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("zone cache invalidate failed", slog.Any("error", err))
	}
	n, _ := s.engine.Registry.Len()
	s.metrics.ActiveZones.Set(float64(n))
}

func (s *AdminService) publish(ctx context.Context, events []domain.MembershipEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events); err != nil {
		s.logger.Error("publish membership events failed", slog.Int("events", len(events)), slog.Any("error", err))
	}
}

func validateZone(z *domain.Zone) error {
	if err := geo.ValidatePoint(z.Center); err != nil {
		return err
	}
	if z.RadiusKM <= 0 {
		return fmt.Errorf("radius_km must be positive: %w", e.ErrInvalidInput)
	}
	return nil
}
