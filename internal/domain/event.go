package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventEntered     EventType = "entered"
	EventExited      EventType = "exited"
	EventTierChanged EventType = "tier_changed"
)

// MembershipEvent is a transition of one entity relative to one zone.
// PrevTier is set for tier changes; Tier is empty for exits.
type MembershipEvent struct {
	Type       EventType `json:"type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Contact    string    `json:"contact"`
	ZoneID     uuid.UUID `json:"zone_id"`
	ZoneKind   string    `json:"zone_kind"`
	Tier       Tier      `json:"tier,omitempty"`
	PrevTier   Tier      `json:"prev_tier,omitempty"`
	DistanceKM float64   `json:"distance_km"`
	At         time.Time `json:"at"`
}
