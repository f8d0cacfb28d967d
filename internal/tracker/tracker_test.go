package tracker

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/geo"
	"disasterAlert/internal/zones"
	"disasterAlert/pkg/e"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTracker(zs ...domain.Zone) (*Tracker, *zones.Registry) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := zones.NewRegistry()
	reg.Replace(zs)
	return New(reg, geo.NewProximityIndex(logger), logger), reg
}

func zone(lng, lat, radius float64) domain.Zone {
	return domain.Zone{
		ID:       uuid.New(),
		Kind:     "Earthquake",
		Center:   orb.Point{lng, lat},
		RadiusKM: radius,
		Active:   true,
		Version:  1,
	}
}

func ping(id uuid.UUID, lng, lat float64, at time.Time) domain.LocationPing {
	return domain.LocationPing{EntityID: id, Location: orb.Point{lng, lat}, RecordedAt: at}
}

func TestProcessPing_EnteredOnceFromOutside(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()
	tr.Register(id, "a@example.com")

	events, matches, err := tr.ProcessPing(ping(id, 1, 1, t0))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, matches)

	events, matches, err = tr.ProcessPing(ping(id, 0, 0.05, t0.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventEntered, events[0].Type)
	assert.Equal(t, z.ID, events[0].ZoneID)
	assert.Equal(t, domain.TierMedium, events[0].Tier)
	assert.Equal(t, "a@example.com", events[0].Contact)
	require.Len(t, matches, 1)
}

func TestProcessPing_FirstPingInsideEnters(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()
	tr.Register(id, "a@example.com")

	events, _, err := tr.ProcessPing(ping(id, 0, 0, t0))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventEntered, events[0].Type)
	assert.Equal(t, domain.TierHigh, events[0].Tier)
}

func TestProcessPing_IdenticalPingIsIdempotent(t *testing.T) {
	tr, _ := newTracker(zone(0, 0, 10))
	id := uuid.New()
	tr.Register(id, "a@example.com")

	p := ping(id, 0, 0.01, t0)
	first, _, err := tr.ProcessPing(p)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, matches, err := tr.ProcessPing(p)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, matches, 1)
}

func TestProcessPing_TierChangeAndExit(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()
	tr.Register(id, "a@example.com")

	_, _, err := tr.ProcessPing(ping(id, 0, 0.08, t0))
	require.NoError(t, err)

	events, _, err := tr.ProcessPing(ping(id, 0, 0.01, t0.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTierChanged, events[0].Type)
	assert.Equal(t, domain.TierSafe, events[0].PrevTier)
	assert.Equal(t, domain.TierHigh, events[0].Tier)

	events, _, err = tr.ProcessPing(ping(id, 1, 1, t0.Add(2*time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventExited, events[0].Type)
	assert.Equal(t, z.ID, events[0].ZoneID)
	assert.Equal(t, domain.TierHigh, events[0].PrevTier)
	assert.Greater(t, events[0].DistanceKM, z.RadiusKM)
}

func TestProcessPing_ExitsBeforeEntries(t *testing.T) {
	a := zone(0, 0, 10)
	b := zone(1, 0, 10)
	tr, _ := newTracker(a, b)
	id := uuid.New()
	tr.Register(id, "a@example.com")

	_, _, err := tr.ProcessPing(ping(id, 0, 0, t0))
	require.NoError(t, err)

	events, _, err := tr.ProcessPing(ping(id, 1, 0, t0.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventExited, events[0].Type)
	assert.Equal(t, a.ID, events[0].ZoneID)
	assert.Equal(t, domain.EventEntered, events[1].Type)
	assert.Equal(t, b.ID, events[1].ZoneID)
}

func TestProcessPing_StaleRejectedAndStateKept(t *testing.T) {
	tr, _ := newTracker(zone(0, 0, 10))
	id := uuid.New()
	tr.Register(id, "a@example.com")

	_, _, err := tr.ProcessPing(ping(id, 0, 0, t0))
	require.NoError(t, err)

	_, _, err = tr.ProcessPing(ping(id, 5, 5, t0.Add(-time.Second)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrStalePing))

	m, err := tr.Memberships(id)
	require.NoError(t, err)
	assert.Len(t, m, 1)

	// equal timestamps are accepted
	_, _, err = tr.ProcessPing(ping(id, 0, 0, t0))
	require.NoError(t, err)
}

func TestProcessPing_Errors(t *testing.T) {
	tr, _ := newTracker(zone(0, 0, 10))

	_, _, err := tr.ProcessPing(ping(uuid.New(), 0, 0, t0))
	assert.True(t, errors.Is(err, e.ErrEntityNotFound))
	assert.True(t, errors.Is(err, e.ErrNotFound))

	id := uuid.New()
	tr.Register(id, "a@example.com")
	_, _, err = tr.ProcessPing(ping(id, 0, 95, t0))
	assert.True(t, errors.Is(err, e.ErrInvalidCoordinate))
}

func TestDeactivateZone_ExitsEveryInsideEntity(t *testing.T) {
	z := zone(0, 0, 10)
	other := zone(50, 50, 10)
	tr, reg := newTracker(z, other)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b, c} {
		tr.Register(id, id.String()+"@example.com")
	}
	_, _, err := tr.ProcessPing(ping(a, 0, 0.01, t0))
	require.NoError(t, err)
	_, _, err = tr.ProcessPing(ping(b, 0.02, 0, t0))
	require.NoError(t, err)
	_, _, err = tr.ProcessPing(ping(c, 50, 50, t0))
	require.NoError(t, err)

	last, ok := reg.Deactivate(z.ID)
	require.True(t, ok)
	events := tr.DeactivateZone(last, t0.Add(time.Hour))

	require.Len(t, events, 2)
	got := map[uuid.UUID]bool{}
	for _, ev := range events {
		assert.Equal(t, domain.EventExited, ev.Type)
		assert.Equal(t, z.ID, ev.ZoneID)
		assert.Equal(t, t0.Add(time.Hour), ev.At)
		got[ev.EntityID] = true
	}
	assert.True(t, got[a])
	assert.True(t, got[b])

	// no second exit on the next ping from the same place
	events, _, err = tr.ProcessPing(ping(a, 0, 0.01, t0.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.Empty(t, tr.DeactivateZone(last, t0.Add(3*time.Hour)))
}

func TestRestore_DoesNotReEnter(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()

	require.NoError(t, tr.Restore(id, "a@example.com", orb.Point{0, 0.01}, t0))

	events, _, err := tr.ProcessPing(ping(id, 0, 0.01, t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Empty(t, events)

	_, _, err = tr.ProcessPing(ping(id, 0, 0, t0.Add(-time.Minute)))
	assert.True(t, errors.Is(err, e.ErrStalePing))
}

func TestRestore_KeepsNewerLiveState(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()

	require.NoError(t, tr.Restore(id, "a@example.com", orb.Point{1, 1}, t0))
	events, _, err := tr.ProcessPing(ping(id, 0, 0.01, t0.Add(10*time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 1)

	// a second lazy load of the same persisted row must not roll the entity back
	require.NoError(t, tr.Restore(id, "a@example.com", orb.Point{1, 1}, t0))

	got, err := tr.Memberships(id)
	require.NoError(t, err)
	assert.Contains(t, got, z.ID)

	events, _, err = tr.ProcessPing(ping(id, 0, 0.01, t0.Add(5*time.Minute)))
	assert.True(t, errors.Is(err, e.ErrStalePing))
	assert.Empty(t, events)
}

func TestRestore_NewerPersistedPositionWins(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()

	require.NoError(t, tr.Restore(id, "a@example.com", orb.Point{1, 1}, t0))
	require.NoError(t, tr.Restore(id, "a@example.com", orb.Point{0, 0.01}, t0.Add(time.Hour)))

	got, err := tr.Memberships(id)
	require.NoError(t, err)
	assert.Contains(t, got, z.ID)
}

func TestClearMemberships_KeepsEntities(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)
	id := uuid.New()
	tr.Register(id, "a@example.com")

	_, _, err := tr.ProcessPing(ping(id, 0, 0.01, t0))
	require.NoError(t, err)

	assert.Equal(t, 1, tr.ClearMemberships())
	assert.Equal(t, 1, tr.Len())

	got, err := tr.Memberships(id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProcessPing_ConcurrentEntities(t *testing.T) {
	z := zone(0, 0, 10)
	tr, _ := newTracker(z)

	const entities = 50
	ids := make([]uuid.UUID, entities)
	for i := range ids {
		ids[i] = uuid.New()
		tr.Register(ids[i], "x@example.com")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		entered = map[uuid.UUID]int{}
	)
	for _, id := range ids {
		id := id
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				events, _, err := tr.ProcessPing(ping(id, 0, 0.01, t0))
				if err != nil {
					t.Errorf("ping: %v", err)
					return
				}
				mu.Lock()
				for _, ev := range events {
					if ev.Type == domain.EventEntered {
						entered[ev.EntityID]++
					}
				}
				mu.Unlock()
			}()
		}
	}
	wg.Wait()

	require.Len(t, entered, entities)
	for id, n := range entered {
		assert.Equal(t, 1, n, "entity %s entered %d times", id, n)
	}
}
