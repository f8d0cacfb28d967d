package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"disasterAlert/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// Admin use cases over zones.
type ZoneService interface {
	Create(ctx context.Context, req domain.CreateZoneRequest) (*domain.Zone, error)
	List(ctx context.Context, page, limit int, includeInactive bool) ([]*domain.Zone, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Zone, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateZoneRequest) (*domain.Zone, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Zone, []domain.MembershipEvent, error)
	Reset(ctx context.Context) (int64, error)
	EntitiesInZone(ctx context.Context, id uuid.UUID) ([]*domain.TrackedEntity, error)
	Alert(ctx context.Context, id uuid.UUID, message string) (int, error)
	Export(ctx context.Context) (*geojson.FeatureCollection, error)
	Refresh(ctx context.Context) error
}

// Public read-only zone queries served from the in-memory zone set.
type ZoneQueryService interface {
	Active(ctx context.Context) []domain.Zone
	Assess(ctx context.Context, p orb.Point) ([]domain.ZoneMatch, error)
	Nearest(ctx context.Context, p orb.Point) (domain.ZoneMatch, error)
	Classify(ctx context.Context, zoneID uuid.UUID, p orb.Point) (domain.ZoneMatch, error)
}

type ResourceService interface {
	Adjust(ctx context.Context, zoneID uuid.UUID, kind domain.ResourceKind, delta int64) (int64, error)
	SetAll(ctx context.Context, zoneID uuid.UUID, res domain.Resources) error
	Get(ctx context.Context, zoneID uuid.UUID) (domain.Resources, error)
	Aggregate(ctx context.Context, zoneIDs []uuid.UUID) (domain.Resources, error)
}

type TrackingService interface {
	ProcessPing(ctx context.Context, ping domain.LocationPing) (domain.PingResponse, error)
}

// PingQueue accepts pings for asynchronous processing.
type PingQueue interface {
	Submit(ping domain.LocationPing) error
}

type EntityService interface {
	Register(ctx context.Context, req domain.RegisterEntityRequest) (domain.RegisterEntityResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TrackedEntity, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error
	Assign(ctx context.Context, volunteerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
	Unassign(ctx context.Context, volunteerID, userID uuid.UUID) ([]uuid.UUID, error)
	Restore(ctx context.Context) (int, error)
}

type StatsService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.PingStats, error)
}

// EventPublisher hands membership events to downstream alerting.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.MembershipEvent) error
}

type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Zone, error)
	List(ctx context.Context, page, limit int, includeInactive bool) ([]*domain.Zone, int64, error)
	ListActive(ctx context.Context) ([]*domain.Zone, error)
	ListAll(ctx context.Context) ([]*domain.Zone, error)
	Update(ctx context.Context, zone *domain.Zone) error
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Zone, error)
	DeleteAll(ctx context.Context) (int64, error)
	CountByActive(ctx context.Context) (active, inactive int64, err error)
}

type EntityRepository interface {
	Create(ctx context.Context, ent *domain.TrackedEntity) error
	Get(ctx context.Context, id uuid.UUID) (*domain.TrackedEntity, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error
	UpdateLocation(ctx context.Context, id uuid.UUID, loc orb.Point, at time.Time) error
	WithinRadius(ctx context.Context, center orb.Point, radiusKM float64) ([]*domain.TrackedEntity, error)
	ListLocated(ctx context.Context) ([]*domain.TrackedEntity, error)
	Assign(ctx context.Context, volunteerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
	Unassign(ctx context.Context, volunteerID, userID uuid.UUID) ([]uuid.UUID, error)
}

type StatsRepository interface {
	CountUsersByStatus(ctx context.Context) (map[domain.EntityStatus]int64, error)
	CountVolunteers(ctx context.Context) (available, busy int64, err error)
}

type PingHistory interface {
	Save(ctx context.Context, ping domain.LocationPing) error
	CountUniqueEntities(ctx context.Context, since time.Time) (int64, error)
	CountPings(ctx context.Context, since time.Time) (int64, error)
	StatsWithin(ctx context.Context, center orb.Point, radiusKM float64, since time.Time) (unique, total int64, err error)
}

type ZoneCache interface {
	GetActive(ctx context.Context) ([]domain.Zone, error)
	SetActive(ctx context.Context, zones []domain.Zone, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type NotificationQueue interface {
	Enqueue(ctx context.Context, n ...domain.Notification) error
}

type NotificationSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.Notification, error)
}

// EventStream is the optional external event sink (Kafka).
type EventStream interface {
	Publish(ctx context.Context, events []domain.MembershipEvent) error
}

type ResourceLedger interface {
	Adjust(ctx context.Context, zoneID uuid.UUID, kind domain.ResourceKind, delta int64) (int64, error)
	SetAll(ctx context.Context, zoneID uuid.UUID, res domain.Resources) error
	Get(ctx context.Context, zoneID uuid.UUID) (domain.Resources, error)
	Aggregate(ctx context.Context, zoneIDs []uuid.UUID) (domain.Resources, error)
}

type Service struct {
	ZoneService      ZoneService
	ZoneQueryService ZoneQueryService
	ResourceService  ResourceService
	TrackingService  TrackingService
	EntityService    EntityService
	StatsService     StatsService
}

func NewService(
	zoneService ZoneService,
	zoneQueryService ZoneQueryService,
	resourceService ResourceService,
	trackingService TrackingService,
	entityService EntityService,
	statsService StatsService,
) *Service {
	return &Service{
		ZoneService:      zoneService,
		ZoneQueryService: zoneQueryService,
		ResourceService:  resourceService,
		TrackingService:  trackingService,
		EntityService:    entityService,
		StatsService:     statsService,
	}
}
