package geo

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterAlert/pkg/e"
)

func TestDistance_KnownValues(t *testing.T) {
	cases := []struct {
		name string
		a, b orb.Point
		want float64
		tol  float64
	}{
		{"same point", orb.Point{37.61, 55.75}, orb.Point{37.61, 55.75}, 0, 1e-9},
		{"one degree of latitude", orb.Point{0, 0}, orb.Point{0, 1}, 111.195, 0.01},
		{"one degree of longitude at equator", orb.Point{0, 0}, orb.Point{1, 0}, 111.195, 0.01},
		{"paris to london", orb.Point{2.3522, 48.8566}, orb.Point{-0.1278, 51.5074}, 343.5, 1.0},
		{"antipodes", orb.Point{0, 0}, orb.Point{180, 0}, math.Pi * EarthRadiusKM, 1e-6},
		{"across the antimeridian", orb.Point{179.5, 0}, orb.Point{-179.5, 0}, 111.195, 0.01},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Distance(c.a, c.b), c.tol)
		})
	}
}

func TestDistance_IsSymmetric(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 1000; i++ {
		a := randomPoint(r)
		b := randomPoint(r)
		assert.Equal(t, Distance(a, b), Distance(b, a), "a=%v b=%v", a, b)
	}
}

func TestDistance_UsesLongitudeFirst(t *testing.T) {
	// 10 degrees east along the 60th parallel is much shorter than 10 degrees north.
	east := Distance(orb.Point{0, 60}, orb.Point{10, 60})
	north := Distance(orb.Point{0, 60}, orb.Point{0, 70})
	assert.Less(t, east, north)
}

func TestValidatePoint(t *testing.T) {
	valid := []orb.Point{{0, 0}, {-180, -90}, {180, 90}, {37.61, 55.75}}
	for _, p := range valid {
		require.NoError(t, ValidatePoint(p), "%v", p)
	}

	invalid := []orb.Point{{181, 0}, {-181, 0}, {0, 91}, {0, -91}, {math.NaN(), 0}, {0, math.NaN()}}
	for _, p := range invalid {
		err := ValidatePoint(p)
		require.Error(t, err, "%v", p)
		assert.True(t, errors.Is(err, e.ErrInvalidCoordinate))
	}
}

func randomPoint(r *rand.Rand) orb.Point {
	return orb.Point{r.Float64()*360 - 180, r.Float64()*180 - 90}
}
