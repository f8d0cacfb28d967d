// Package tracker turns location pings into zone membership transitions.
//
// Each entity has an OUTSIDE/INSIDE state per zone. Events are raised only on transitions,
// so an entity that keeps pinging from inside a zone is alerted once. Pings for one entity
// are serialized by a per-entity lock; different entities run in parallel.
package tracker

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/geo"
	"disasterAlert/pkg/e"
)

// ZoneSource supplies the current zone set. Implementations must return an immutable snapshot.
type ZoneSource interface {
	Active() []domain.Zone
}

type membership struct {
	kind   string
	center orb.Point
	tier   domain.Tier
}

type entityState struct {
	contact  string
	hasPing  bool
	lastAt   time.Time
	location orb.Point
	inside   map[uuid.UUID]membership
}

type Tracker struct {
	zones  ZoneSource
	index  *geo.ProximityIndex
	locks  *locker.Locker
	logger *slog.Logger

	mu       sync.RWMutex
	entities map[uuid.UUID]*entityState
}

func New(zones ZoneSource, index *geo.ProximityIndex, logger *slog.Logger) *Tracker {
	return &Tracker{
		zones:    zones,
		index:    index,
		locks:    locker.New(),
		logger:   logger,
		entities: make(map[uuid.UUID]*entityState),
	}
}

// lock serializes work on one entity and returns the release func.
func (t *Tracker) lock(id uuid.UUID) func() {
	key := id.String()
	t.locks.Lock(key)
	return func() { _ = t.locks.Unlock(key) }
}

// Register makes an entity known to the tracker. Registering a known entity only updates its contact.
func (t *Tracker) Register(id uuid.UUID, contact string) {
	unlock := t.lock(id)
	defer unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.entities[id]; ok {
		st.contact = contact
		return
	}
	t.entities[id] = &entityState{contact: contact, inside: make(map[uuid.UUID]membership)}
}

// Restore seeds an entity with a persisted location. Memberships are settled silently,
// so a restarted process does not alert again for zones the entity was already inside.
// An entity whose last ping is not older than at keeps its live state.
func (t *Tracker) Restore(id uuid.UUID, contact string, p orb.Point, at time.Time) error {
	matches, err := t.index.FindContainingZones(p, t.zones.Active())
	if err != nil {
		return err
	}

	st := &entityState{
		contact:  contact,
		hasPing:  true,
		lastAt:   at,
		location: p,
		inside:   make(map[uuid.UUID]membership, len(matches)),
	}
	for _, m := range matches {
		st.inside[m.Zone.ID] = membership{kind: m.Zone.Kind, center: m.Zone.Center, tier: m.Tier}
	}

	unlock := t.lock(id)
	defer unlock()

	t.mu.Lock()
	if cur, ok := t.entities[id]; ok && cur.hasPing && !cur.lastAt.Before(at) {
		// a live ping already settled this entity at or after the persisted position
		t.mu.Unlock()
		return nil
	}
	t.entities[id] = st
	t.mu.Unlock()
	return nil
}

// ClearMemberships settles every entity OUTSIDE all zones without raising events.
// Used after a bulk zone reset, where the zones themselves no longer exist.
func (t *Tracker) ClearMemberships() int {
	t.mu.RLock()
	ids := make([]uuid.UUID, 0, len(t.entities))
	for id := range t.entities {
		ids = append(ids, id)
	}
	t.mu.RUnlock()

	cleared := 0
	for _, id := range ids {
		unlock := t.lock(id)
		if st, ok := t.lookup(id); ok {
			cleared += len(st.inside)
			st.inside = make(map[uuid.UUID]membership)
		}
		unlock()
	}
	return cleared
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entities)
}

func (t *Tracker) Contact(id uuid.UUID) (string, error) {
	unlock := t.lock(id)
	defer unlock()

	st, ok := t.lookup(id)
	if !ok {
		return "", e.ErrEntityNotFound
	}
	return st.contact, nil
}

// Memberships returns the zones the entity is currently inside, with their tiers.
func (t *Tracker) Memberships(id uuid.UUID) (map[uuid.UUID]domain.Tier, error) {
	unlock := t.lock(id)
	defer unlock()

	st, ok := t.lookup(id)
	if !ok {
		return nil, e.ErrEntityNotFound
	}

	out := make(map[uuid.UUID]domain.Tier, len(st.inside))
	for zoneID, m := range st.inside {
		out[zoneID] = m.tier
	}
	return out, nil
}

// ProcessPing applies one ping and returns the transitions it caused together with the
// zones that contain the new location. Exited events come first, ordered by zone id,
// followed by Entered and TierChanged events nearest zone first.
func (t *Tracker) ProcessPing(ping domain.LocationPing) ([]domain.MembershipEvent, []domain.ZoneMatch, error) {
	if err := geo.ValidatePoint(ping.Location); err != nil {
		return nil, nil, err
	}

	unlock := t.lock(ping.EntityID)
	defer unlock()

	st, ok := t.lookup(ping.EntityID)
	if !ok {
		return nil, nil, e.ErrEntityNotFound
	}
	if st.hasPing && ping.RecordedAt.Before(st.lastAt) {
		return nil, nil, e.Wrap(ping.RecordedAt.Format(time.RFC3339Nano)+" before "+st.lastAt.Format(time.RFC3339Nano), e.ErrStalePing)
	}

	// Read the zone set under the entity lock so a concurrent deactivation either
	// sees this entity inside or this ping sees the zone gone.
	matches, err := t.index.FindContainingZones(ping.Location, t.zones.Active())
	if err != nil {
		return nil, nil, err
	}

	events := t.transitions(ping, st, matches)

	next := make(map[uuid.UUID]membership, len(matches))
	for _, m := range matches {
		next[m.Zone.ID] = membership{kind: m.Zone.Kind, center: m.Zone.Center, tier: m.Tier}
	}
	st.inside = next
	st.hasPing = true
	st.lastAt = ping.RecordedAt
	st.location = ping.Location
	if ping.Contact != "" {
		st.contact = ping.Contact
	}

	return events, matches, nil
}

func (t *Tracker) transitions(ping domain.LocationPing, st *entityState, matches []domain.ZoneMatch) []domain.MembershipEvent {
	current := make(map[uuid.UUID]struct{}, len(matches))
	for _, m := range matches {
		current[m.Zone.ID] = struct{}{}
	}

	var events []domain.MembershipEvent

	exited := make([]uuid.UUID, 0)
	for zoneID := range st.inside {
		if _, ok := current[zoneID]; !ok {
			exited = append(exited, zoneID)
		}
	}
	slices.SortFunc(exited, func(a, b uuid.UUID) int { return cmp.Compare(a.String(), b.String()) })
	for _, zoneID := range exited {
		prev := st.inside[zoneID]
		events = append(events, domain.MembershipEvent{
			Type:       domain.EventExited,
			EntityID:   ping.EntityID,
			Contact:    st.contact,
			ZoneID:     zoneID,
			ZoneKind:   prev.kind,
			PrevTier:   prev.tier,
			DistanceKM: geo.Distance(ping.Location, prev.center),
			At:         ping.RecordedAt,
		})
	}

	for _, m := range matches {
		if m.Tier == domain.TierOutside {
			t.logger.Error("classifier returned outside for a containing zone",
				slog.String("zone_id", m.Zone.ID.String()),
				slog.Float64("distance_km", m.DistanceKM),
				slog.Float64("radius_km", m.Zone.RadiusKM),
			)
			continue
		}

		ev := domain.MembershipEvent{
			EntityID:   ping.EntityID,
			Contact:    st.contact,
			ZoneID:     m.Zone.ID,
			ZoneKind:   m.Zone.Kind,
			Tier:       m.Tier,
			DistanceKM: m.DistanceKM,
			At:         ping.RecordedAt,
		}
		prev, wasInside := st.inside[m.Zone.ID]
		switch {
		case !wasInside:
			ev.Type = domain.EventEntered
		case prev.tier != m.Tier:
			ev.Type = domain.EventTierChanged
			ev.PrevTier = prev.tier
		default:
			continue
		}
		events = append(events, ev)
	}

	return events
}

// DeactivateZone forces an Exited event for every entity currently inside the zone.
// The zone must already be gone from the ZoneSource so later pings cannot re-enter it.
func (t *Tracker) DeactivateZone(zone domain.Zone, at time.Time) []domain.MembershipEvent {
	t.mu.RLock()
	ids := make([]uuid.UUID, 0, len(t.entities))
	for id := range t.entities {
		ids = append(ids, id)
	}
	t.mu.RUnlock()

	slices.SortFunc(ids, func(a, b uuid.UUID) int { return cmp.Compare(a.String(), b.String()) })

	var events []domain.MembershipEvent
	for _, id := range ids {
		if ev, ok := t.evict(id, zone, at); ok {
			events = append(events, ev)
		}
	}

	t.logger.Info("zone memberships cleared",
		slog.String("zone_id", zone.ID.String()),
		slog.Int("exited", len(events)),
	)
	return events
}

func (t *Tracker) evict(id uuid.UUID, zone domain.Zone, at time.Time) (domain.MembershipEvent, bool) {
	unlock := t.lock(id)
	defer unlock()

	st, ok := t.lookup(id)
	if !ok {
		return domain.MembershipEvent{}, false
	}
	prev, inside := st.inside[zone.ID]
	if !inside {
		return domain.MembershipEvent{}, false
	}
	delete(st.inside, zone.ID)

	return domain.MembershipEvent{
		Type:       domain.EventExited,
		EntityID:   id,
		Contact:    st.contact,
		ZoneID:     zone.ID,
		ZoneKind:   prev.kind,
		PrevTier:   prev.tier,
		DistanceKM: geo.Distance(st.location, prev.center),
		At:         at,
	}, true
}

func (t *Tracker) lookup(id uuid.UUID) (*entityState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.entities[id]
	return st, ok
}
