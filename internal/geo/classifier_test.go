package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"disasterAlert/internal/domain"
)

func TestClassifyDistance_Bands(t *testing.T) {
	cases := []struct {
		d, r float64
		want domain.Tier
	}{
		{0, 10, domain.TierHigh},
		{0.33, 1, domain.TierHigh},
		{math.Nextafter(0.33, 1), 1, domain.TierMedium},
		{0.5, 1, domain.TierMedium},
		{0.66, 1, domain.TierMedium},
		{math.Nextafter(0.66, 1), 1, domain.TierSafe},
		{1, 1, domain.TierSafe},
		{math.Nextafter(1, 2), 1, domain.TierOutside},
		{5, 0, domain.TierOutside},
		{0, -1, domain.TierOutside},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyDistance(c.d, c.r), "d=%v r=%v", c.d, c.r)
	}
}

func TestClassify_IsMonotonicInDistance(t *testing.T) {
	const r = 25.0
	prev := domain.TierHigh.Rank()
	for d := 0.0; d <= r*1.2; d += 0.01 {
		rank := ClassifyDistance(d, r).Rank()
		assert.GreaterOrEqual(t, rank, prev, "tier became more severe at d=%v", d)
		prev = rank
	}
}

func TestClassify_Scenario_MediumTier(t *testing.T) {
	zone := domain.Zone{Center: orb.Point{0, 0}, RadiusKM: 10, Active: true}
	p := orb.Point{0, 0.05}

	d := Distance(p, zone.Center)
	assert.InDelta(t, 5.56, d, 0.01)
	assert.InDelta(t, 0.556, d/zone.RadiusKM, 0.001)
	assert.Equal(t, domain.TierMedium, Classify(p, zone))
}

func TestClassify_ExactBoundaryIsSafe(t *testing.T) {
	center := orb.Point{0, 0}
	p := orb.Point{0.05, 0.07}
	zone := domain.Zone{Center: center, RadiusKM: Distance(p, center), Active: true}

	assert.Equal(t, domain.TierSafe, Classify(p, zone))
}
