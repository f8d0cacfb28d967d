package service

import (
	"log/slog"

	"disasterAlert/internal/geo"
	"disasterAlert/internal/tracker"
	"disasterAlert/internal/zones"
)

// Engine is the in-memory zone engine shared by the services: the zone set,
// the proximity index over it and the membership tracker fed by pings.
type Engine struct {
	Registry *zones.Registry
	Index    *geo.ProximityIndex
	Tracker  *tracker.Tracker
}

func NewEngine(logger *slog.Logger) *Engine {
	registry := zones.NewRegistry()
	index := geo.NewProximityIndex(logger)
	return &Engine{
		Registry: registry,
		Index:    index,
		Tracker:  tracker.New(registry, index, logger),
	}
}
