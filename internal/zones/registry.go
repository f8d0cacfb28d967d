// Package zones keeps the in-process zone set read by proximity lookups.
//
// Readers load an immutable snapshot through an atomic pointer. Writers are serialized,
// build a fresh snapshot and swap it in, so a lookup sees every zone either entirely
// before or entirely after a mutation. Zones handed out by Active and Get must be
// treated as read-only.
package zones

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"disasterAlert/internal/domain"
)

type snapshot struct {
	byID   map[uuid.UUID]domain.Zone
	active []domain.Zone
}

type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(&snapshot{byID: map[uuid.UUID]domain.Zone{}})
	return r
}

// Active returns the active zones of the current snapshot.
func (r *Registry) Active() []domain.Zone {
	return r.snap.Load().active
}

func (r *Registry) Get(id uuid.UUID) (domain.Zone, bool) {
	z, ok := r.snap.Load().byID[id]
	return z, ok
}

func (r *Registry) Len() (active, total int) {
	s := r.snap.Load()
	return len(s.active), len(s.byID)
}

// Replace swaps the whole zone set, e.g. after loading from storage. Zones missing
// from zones are dropped; a held zone with a newer version than the loaded one is kept.
func (r *Registry) Replace(zones []domain.Zone) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	byID := make(map[uuid.UUID]domain.Zone, len(zones))
	for _, z := range zones {
		if old, ok := cur.byID[z.ID]; ok && old.Version > z.Version {
			byID[z.ID] = old
			continue
		}
		byID[z.ID] = z.Clone()
	}
	r.snap.Store(build(byID))
}

// Put inserts or replaces one zone. An older version never overwrites a newer one.
func (r *Registry) Put(z domain.Zone) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	if old, ok := cur.byID[z.ID]; ok && old.Version > z.Version {
		return
	}
	byID := copyMap(cur.byID)
	byID[z.ID] = z.Clone()
	r.snap.Store(build(byID))
}

// SetResources applies a ledger change to the cached zone.
func (r *Registry) SetResources(id uuid.UUID, res domain.Resources, version int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	old, ok := cur.byID[id]
	if !ok || old.Version > version {
		return
	}
	old.Resources = res.Clone()
	old.Version = version
	byID := copyMap(cur.byID)
	byID[id] = old
	r.snap.Store(build(byID))
}

// Deactivate marks a zone inactive and returns its last state.
func (r *Registry) Deactivate(id uuid.UUID) (domain.Zone, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	z, ok := cur.byID[id]
	if !ok {
		return domain.Zone{}, false
	}
	z.Active = false
	byID := copyMap(cur.byID)
	byID[id] = z
	r.snap.Store(build(byID))
	return z, true
}

func copyMap(src map[uuid.UUID]domain.Zone) map[uuid.UUID]domain.Zone {
	dst := make(map[uuid.UUID]domain.Zone, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func build(byID map[uuid.UUID]domain.Zone) *snapshot {
	active := make([]domain.Zone, 0, len(byID))
	for _, z := range byID {
		if z.Active {
			active = append(active, z)
		}
	}
	return &snapshot{byID: byID, active: active}
}
