package geo

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

func newTestIndex() (*ProximityIndex, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return NewProximityIndex(logger), buf
}

func zoneAt(lng, lat, radius float64) domain.Zone {
	return domain.Zone{
		ID:       uuid.New(),
		Kind:     "Flood",
		Center:   orb.Point{lng, lat},
		RadiusKM: radius,
		Active:   true,
	}
}

func TestFindContainingZones_ContainmentMatchesDistance(t *testing.T) {
	idx, _ := newTestIndex()
	r := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 500; i++ {
		z := zoneAt(r.Float64()*2-1, r.Float64()*2-1, 1+r.Float64()*100)
		p := orb.Point{r.Float64()*4 - 2, r.Float64()*4 - 2}

		got, err := idx.FindContainingZones(p, []domain.Zone{z})
		require.NoError(t, err)

		inside := Distance(p, z.Center) <= z.RadiusKM
		assert.Equal(t, inside, len(got) == 1, "p=%v zone=%v r=%v", p, z.Center, z.RadiusKM)
	}
}

func TestFindContainingZones_InclusiveBoundary(t *testing.T) {
	idx, _ := newTestIndex()
	p := orb.Point{0.04, 0.08}
	z := zoneAt(0, 0, 0)
	z.RadiusKM = Distance(p, z.Center)

	got, err := idx.FindContainingZones(p, []domain.Zone{z})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TierSafe, got[0].Tier)
}

func TestFindContainingZones_NearestFirst(t *testing.T) {
	idx, _ := newTestIndex()
	far := zoneAt(0.3, 0, 100)
	near := zoneAt(0.01, 0, 100)
	mid := zoneAt(0.1, 0, 100)

	got, err := idx.FindContainingZones(orb.Point{0, 0}, []domain.Zone{far, near, mid})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, near.ID, got[0].Zone.ID)
	assert.Equal(t, mid.ID, got[1].Zone.ID)
	assert.Equal(t, far.ID, got[2].Zone.ID)
	assert.LessOrEqual(t, got[0].DistanceKM, got[1].DistanceKM)
}

func TestFindContainingZones_SkipsInactiveAndInconsistentZones(t *testing.T) {
	idx, logs := newTestIndex()

	inactive := zoneAt(0, 0, 50)
	inactive.Active = false
	zeroRadius := zoneAt(0, 0, 0)
	badCenter := zoneAt(200, 0, 50)
	good := zoneAt(0, 0, 50)

	got, err := idx.FindContainingZones(orb.Point{0, 0}, []domain.Zone{inactive, zeroRadius, badCenter, good})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, good.ID, got[0].Zone.ID)

	assert.Contains(t, logs.String(), "non-positive radius")
	assert.Contains(t, logs.String(), "invalid center")
}

func TestFindContainingZones_InvalidPoint(t *testing.T) {
	idx, _ := newTestIndex()
	_, err := idx.FindContainingZones(orb.Point{0, 120}, []domain.Zone{zoneAt(0, 0, 10)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrInvalidCoordinate))
}

func TestFindContainingZones_DoesNotMutateInput(t *testing.T) {
	idx, _ := newTestIndex()
	zones := []domain.Zone{zoneAt(0.2, 0, 100), zoneAt(0.1, 0, 100)}
	first := zones[0].ID

	_, err := idx.FindContainingZones(orb.Point{0, 0}, zones)
	require.NoError(t, err)
	assert.Equal(t, first, zones[0].ID)
}

func TestNearest(t *testing.T) {
	idx, _ := newTestIndex()
	a := zoneAt(1, 0, 5)
	b := zoneAt(3, 0, 500)

	got, ok, err := idx.Nearest(orb.Point{0, 0}, []domain.Zone{b, a})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.ID, got.Zone.ID)
	assert.Equal(t, domain.TierOutside, got.Tier)

	_, ok, err = idx.Nearest(orb.Point{0, 0}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
