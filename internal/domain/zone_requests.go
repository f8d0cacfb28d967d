package domain

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type CreateZoneRequest struct {
	Kind        string     `json:"kind" validate:"required,max=64"`
	Description string     `json:"description" validate:"max=2000"`
	Center      *orb.Point `json:"center" validate:"required,lnglat"`
	RadiusKM    float64    `json:"radius_km" validate:"required,radius_km"`
	Resources   Resources  `json:"resources,omitempty" validate:"omitempty,dive,keys,resource_kind,endkeys,min=0"`
}

type UpdateZoneRequest struct {
	Kind        *string    `json:"kind" validate:"omitempty,max=64"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Center      *orb.Point `json:"center" validate:"omitempty,lnglat"`
	RadiusKM    *float64   `json:"radius_km" validate:"omitempty,radius_km"`
}

type ListZonesResponse struct {
	Zones []*Zone `json:"zones"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Total int64   `json:"total"`
}

type AdjustResourceRequest struct {
	Kind  ResourceKind `json:"kind" validate:"required,resource_kind"`
	Delta int64        `json:"delta" validate:"required"`
}

type AdjustResourceResponse struct {
	ZoneID uuid.UUID    `json:"zone_id"`
	Kind   ResourceKind `json:"kind"`
	Total  int64        `json:"total"`
}

type SetResourcesRequest struct {
	Resources Resources `json:"resources" validate:"required,dive,keys,resource_kind,endkeys,min=0"`
}

type AlertZoneRequest struct {
	Message string `json:"message" validate:"max=500"`
}

type AlertZoneResponse struct {
	ZoneID   uuid.UUID `json:"zone_id"`
	Notified int       `json:"notified"`
}

type DeactivateZoneResponse struct {
	Zone   *Zone             `json:"zone"`
	Events []MembershipEvent `json:"events"`
}
