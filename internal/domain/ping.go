package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// LocationPing is one timestamped position report. History records expire after the retention window.
type LocationPing struct {
	EntityID   uuid.UUID `json:"entity_id"`
	Contact    string    `json:"contact"`
	Location   orb.Point `json:"location"`
	RecordedAt time.Time `json:"recorded_at"`
}

type PingRequest struct {
	EntityID  string     `json:"entity_id" validate:"required,uuid"`
	Location  *orb.Point `json:"location" validate:"required,lnglat"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type PingResponse struct {
	Events []MembershipEvent `json:"events"`
	Zones  []ZoneMatch       `json:"zones"`
}
