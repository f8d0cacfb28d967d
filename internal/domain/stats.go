package domain

import "github.com/google/uuid"

type PingStats struct {
	UniqueEntities int64      `json:"unique_entities"`
	TotalPings     int64      `json:"total_pings"`
	Minutes        int        `json:"minutes"`
	ZoneID         *uuid.UUID `json:"zone_id,omitempty"`
}

// StatsRequest selects a window of ping history, optionally restricted to one zone's radius.
type StatsRequest struct {
	Minutes int        `query:"minutes" validate:"min=1,max=1440"`
	ZoneID  *uuid.UUID `query:"zone_id"`
}

type Dashboard struct {
	ActiveZones         int                    `json:"active_zones"`
	InactiveZones       int                    `json:"inactive_zones"`
	Resources           Resources              `json:"resources"`
	UsersByStatus       map[EntityStatus]int64 `json:"users_by_status"`
	VolunteersAvailable int64                  `json:"volunteers_available"`
	VolunteersBusy      int64                  `json:"volunteers_busy"`
	LastHour            PingStats              `json:"last_hour"`
}
