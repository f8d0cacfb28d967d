package geo

import (
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
)

// Band edges as fractions of the zone radius. Each band includes its upper edge.
const (
	HighRatio   = 0.33
	MediumRatio = 0.66
)

// Classify maps the distance from p to the zone center onto a danger tier.
// Points beyond the radius get domain.TierOutside so the function stays total.
func Classify(p orb.Point, zone domain.Zone) domain.Tier {
	return ClassifyDistance(Distance(p, zone.Center), zone.RadiusKM)
}

func ClassifyDistance(distanceKM, radiusKM float64) domain.Tier {
	if radiusKM <= 0 || distanceKM > radiusKM {
		return domain.TierOutside
	}
	ratio := distanceKM / radiusKM
	switch {
	case ratio <= HighRatio:
		return domain.TierHigh
	case ratio <= MediumRatio:
		return domain.TierMedium
	default:
		return domain.TierSafe
	}
}
