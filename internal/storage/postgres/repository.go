package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
)

type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Zone, error)
	List(ctx context.Context, page, limit int, includeInactive bool) ([]*domain.Zone, int64, error)
	ListActive(ctx context.Context) ([]*domain.Zone, error)
	ListAll(ctx context.Context) ([]*domain.Zone, error)
	Update(ctx context.Context, zone *domain.Zone) error
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Zone, error) // soft delete
	DeleteAll(ctx context.Context) (int64, error)
	CountByActive(ctx context.Context) (active, inactive int64, err error)

	GetResources(ctx context.Context, id uuid.UUID) (domain.Resources, int64, error)
	CompareAndSwapResources(ctx context.Context, id uuid.UUID, version int64, res domain.Resources) (int64, error)
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

var (
	_ ZoneRepository   = (*ZoneRepo)(nil)
	_ EntityRepository = (*EntityRepo)(nil)
	_ StatsRepository  = (*StatsRepo)(nil)
)

func (p *Postgres) Zones() ZoneRepository      { return p.Zone }
func (p *Postgres) Entities() EntityRepository { return p.Entity }
func (p *Postgres) Stats() StatsRepository     { return p.Stat }
