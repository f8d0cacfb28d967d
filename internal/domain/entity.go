package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type EntityRole string

const (
	RoleUser      EntityRole = "user"
	RoleVolunteer EntityRole = "volunteer"
)

type EntityStatus string

const (
	StatusSafe      EntityStatus = "safe"
	StatusEmergency EntityStatus = "emergency"
	StatusCritical  EntityStatus = "critical"
	StatusDead      EntityStatus = "dead"

	StatusAvailable EntityStatus = "available"
	StatusAssigned  EntityStatus = "assigned"
)

// ValidFor reports whether s belongs to the status set of role.
func (s EntityStatus) ValidFor(role EntityRole) bool {
	switch role {
	case RoleUser:
		switch s {
		case StatusSafe, StatusEmergency, StatusCritical, StatusDead:
			return true
		}
	case RoleVolunteer:
		switch s {
		case StatusAvailable, StatusAssigned:
			return true
		}
	}
	return false
}

func InitialStatus(role EntityRole) EntityStatus {
	if role == RoleVolunteer {
		return StatusAvailable
	}
	return StatusSafe
}

// TrackedEntity is a user or a volunteer. Location is nil while unknown.
type TrackedEntity struct {
	ID          uuid.UUID    `json:"id"`
	Role        EntityRole   `json:"role"`
	Name        string       `json:"name"`
	Contact     string       `json:"contact"`
	Phone       string       `json:"phone,omitempty"`
	Location    *orb.Point   `json:"location,omitempty"`
	LocatedAt   *time.Time   `json:"located_at,omitempty"`
	Status      EntityStatus `json:"status"`
	Assignments []uuid.UUID  `json:"assignments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`

	// Memberships is derived from the tracker, never stored.
	Memberships map[uuid.UUID]Tier `json:"memberships,omitempty"`
}

type RegisterEntityRequest struct {
	Role     EntityRole `json:"role" validate:"required,oneof=user volunteer"`
	Name     string     `json:"name" validate:"max=200"`
	Contact  string     `json:"contact" validate:"required,email"`
	Phone    string     `json:"phone" validate:"omitempty,max=32"`
	Location *orb.Point `json:"location" validate:"omitempty,lnglat"`
}

type RegisterEntityResponse struct {
	Entity *TrackedEntity    `json:"entity"`
	Events []MembershipEvent `json:"events,omitempty"`
	Zones  []ZoneMatch       `json:"zones,omitempty"`
}

type UpdateStatusRequest struct {
	Status EntityStatus `json:"status" validate:"required"`
}

type AssignRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1,dive,required"`
}

type ListEntitiesResponse struct {
	Entities []*TrackedEntity `json:"entities"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
}
