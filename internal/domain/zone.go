package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type ResourceKind string

const (
	ResourceFood     ResourceKind = "food"
	ResourceMedikits ResourceKind = "medikits"
	ResourceWater    ResourceKind = "water"
	ResourceBlankets ResourceKind = "blankets"
)

// Resources maps a resource kind to a non-negative count. Kinds are open-ended.
type Resources map[ResourceKind]int64

func DefaultResources() Resources {
	return Resources{
		ResourceFood:     0,
		ResourceMedikits: 0,
		ResourceWater:    0,
		ResourceBlankets: 0,
	}
}

func (r Resources) Clone() Resources {
	if r == nil {
		return nil
	}
	out := make(Resources, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Zone is a disaster event modelled as a circular geofence.
// Center follows the GeoJSON convention: [longitude, latitude].
type Zone struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Center      orb.Point `json:"center"`
	RadiusKM    float64   `json:"radius_km"`
	Resources   Resources `json:"resources"`
	Active      bool      `json:"active"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns a copy that shares no mutable state with z.
func (z Zone) Clone() Zone {
	z.Resources = z.Resources.Clone()
	return z
}

// ZoneMatch is a zone that contains a query point.
type ZoneMatch struct {
	Zone       Zone    `json:"zone"`
	DistanceKM float64 `json:"distance_km"`
	Tier       Tier    `json:"tier"`
}
