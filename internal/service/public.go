package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/geo"
	"disasterAlert/pkg/e"
)

type publicZoneService struct {
	engine *Engine
}

func NewPublicZoneService(engine *Engine) ZoneQueryService {
	return &publicZoneService{engine: engine}
}

func (s *publicZoneService) Active(_ context.Context) []domain.Zone {
	return s.engine.Registry.Active()
}

// Assess returns the active zones containing p, nearest first, each with its tier.
func (s *publicZoneService) Assess(_ context.Context, p orb.Point) ([]domain.ZoneMatch, error) {
	return s.engine.Index.FindContainingZones(p, s.engine.Registry.Active())
}

func (s *publicZoneService) Nearest(_ context.Context, p orb.Point) (domain.ZoneMatch, error) {
	m, ok, err := s.engine.Index.Nearest(p, s.engine.Registry.Active())
	if err != nil {
		return domain.ZoneMatch{}, err
	}
	if !ok {
		return domain.ZoneMatch{}, e.ErrZoneNotFound
	}
	return m, nil
}

// Classify reports the tier of p within one active zone. A point beyond the
// radius yields e.ErrOutsideZone rather than a tier.
func (s *publicZoneService) Classify(_ context.Context, zoneID uuid.UUID, p orb.Point) (domain.ZoneMatch, error) {
	const op = "service.Zone.Classify"

	if err := geo.ValidatePoint(p); err != nil {
		return domain.ZoneMatch{}, fmt.Errorf("%s: %w", op, err)
	}
	zone, ok := s.engine.Registry.Get(zoneID)
	if !ok || !zone.Active {
		return domain.ZoneMatch{}, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
	}

	d := geo.Distance(p, zone.Center)
	tier := geo.ClassifyDistance(d, zone.RadiusKM)
	if tier == domain.TierOutside {
		return domain.ZoneMatch{}, fmt.Errorf("%s: %.3f km from center, radius %.3f km: %w", op, d, zone.RadiusKM, e.ErrOutsideZone)
	}
	return domain.ZoneMatch{Zone: zone, DistanceKM: d, Tier: tier}, nil
}
