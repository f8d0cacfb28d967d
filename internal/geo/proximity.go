package geo

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
)

// ProximityIndex answers containment queries over a caller-supplied zone set.
// It filters inactive zones itself and never mutates its input.
type ProximityIndex struct {
	logger *slog.Logger
}

func NewProximityIndex(logger *slog.Logger) *ProximityIndex {
	return &ProximityIndex{logger: logger}
}

// FindContainingZones returns every active zone whose radius contains p (boundary inclusive),
// nearest first, each with its distance and tier.
func (x *ProximityIndex) FindContainingZones(p orb.Point, zones []domain.Zone) ([]domain.ZoneMatch, error) {
	if err := ValidatePoint(p); err != nil {
		return nil, err
	}

	matches := make([]domain.ZoneMatch, 0, 4)
	for i := range zones {
		z := &zones[i]
		if !x.usable(z) {
			continue
		}
		d := Distance(p, z.Center)
		if d > z.RadiusKM {
			continue
		}
		matches = append(matches, domain.ZoneMatch{
			Zone:       *z,
			DistanceKM: d,
			Tier:       ClassifyDistance(d, z.RadiusKM),
		})
	}

	sortMatches(matches)
	return matches, nil
}

// Nearest returns the active zone whose center is closest to p, whether or not p is inside it.
func (x *ProximityIndex) Nearest(p orb.Point, zones []domain.Zone) (domain.ZoneMatch, bool, error) {
	if err := ValidatePoint(p); err != nil {
		return domain.ZoneMatch{}, false, err
	}

	var (
		best  domain.ZoneMatch
		found bool
	)
	for i := range zones {
		z := &zones[i]
		if !x.usable(z) {
			continue
		}
		d := Distance(p, z.Center)
		if !found || d < best.DistanceKM || (d == best.DistanceKM && z.ID.String() < best.Zone.ID.String()) {
			best = domain.ZoneMatch{Zone: *z, DistanceKM: d, Tier: ClassifyDistance(d, z.RadiusKM)}
			found = true
		}
	}
	return best, found, nil
}

func (x *ProximityIndex) usable(z *domain.Zone) bool {
	if !z.Active {
		return false
	}
	if z.RadiusKM <= 0 {
		x.logger.Warn("zone skipped: non-positive radius",
			slog.String("zone_id", z.ID.String()),
			slog.Float64("radius_km", z.RadiusKM),
		)
		return false
	}
	if err := ValidatePoint(z.Center); err != nil {
		x.logger.Warn("zone skipped: invalid center",
			slog.String("zone_id", z.ID.String()),
			slog.Any("error", err),
		)
		return false
	}
	return true
}

func sortMatches(m []domain.ZoneMatch) {
	slices.SortStableFunc(m, func(a, b domain.ZoneMatch) int {
		if c := cmp.Compare(a.DistanceKM, b.DistanceKM); c != 0 {
			return c
		}
		return cmp.Compare(a.Zone.ID.String(), b.Zone.ID.String())
	})
}
