package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification is the payload handed to the delivery stub (webhook standing in for SMS/push).
type Notification struct {
	ID        uuid.UUID `json:"id"`
	EntityID  uuid.UUID `json:"entity_id"`
	Contact   string    `json:"contact"`
	ZoneID    uuid.UUID `json:"zone_id"`
	Event     EventType `json:"event,omitempty"`
	Tier      Tier      `json:"tier,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NotificationFromEvent(ev MembershipEvent) Notification {
	return Notification{
		ID:        uuid.New(),
		EntityID:  ev.EntityID,
		Contact:   ev.Contact,
		ZoneID:    ev.ZoneID,
		Event:     ev.Type,
		Tier:      ev.Tier,
		Message:   EventMessage(ev),
		CreatedAt: ev.At,
	}
}

func EventMessage(ev MembershipEvent) string {
	switch ev.Type {
	case EventEntered:
		return fmt.Sprintf("You entered a %s zone (%s danger, %.1f km from center)", ev.ZoneKind, ev.Tier, ev.DistanceKM)
	case EventTierChanged:
		return fmt.Sprintf("%s zone danger changed from %s to %s (%.1f km from center)", ev.ZoneKind, ev.PrevTier, ev.Tier, ev.DistanceKM)
	case EventExited:
		return fmt.Sprintf("You left the %s zone", ev.ZoneKind)
	default:
		return string(ev.Type)
	}
}
