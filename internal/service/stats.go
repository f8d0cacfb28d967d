package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/ledger"
	"disasterAlert/pkg/e"
)

const (
	defaultStatsMinutes = 60
	maxStatsMinutes     = 24 * 60
)

type statsService struct {
	zones   ZoneRepository
	repo    StatsRepository
	history PingHistory
	engine  *Engine
	clock   clockwork.Clock
}

func NewStatsService(
	zones ZoneRepository,
	repo StatsRepository,
	history PingHistory,
	engine *Engine,
	clock clockwork.Clock,
) StatsService {
	return &statsService{
		zones:   zones,
		repo:    repo,
		history: history,
		engine:  engine,
		clock:   clock,
	}
}

// Dashboard rolls up zone counts, resource totals over active zones, entity
// statuses and the last hour of ping activity.
func (s *statsService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	active, inactive, err := s.zones.CountByActive(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.CountUsersByStatus(ctx)
	if err != nil {
		return nil, err
	}

	available, busy, err := s.repo.CountVolunteers(ctx)
	if err != nil {
		return nil, err
	}

	lastHour, err := s.window(ctx, defaultStatsMinutes)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		ActiveZones:         int(active),
		InactiveZones:       int(inactive),
		Resources:           ledger.Sum(s.engine.Registry.Active()),
		UsersByStatus:       users,
		VolunteersAvailable: available,
		VolunteersBusy:      busy,
		LastHour:            *lastHour,
	}, nil
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.PingStats, error) {
	const op = "service.Stats.GetStats"

	minutes := req.Minutes
	if minutes == 0 {
		minutes = defaultStatsMinutes
	}
	if minutes < 1 || minutes > maxStatsMinutes {
		return nil, fmt.Errorf("%s: minutes must be in [1,%d]: %w", op, maxStatsMinutes, e.ErrInvalidInput)
	}

	if req.ZoneID == nil {
		return s.window(ctx, minutes)
	}

	zone, err := s.zones.Get(ctx, *req.ZoneID)
	if err != nil {
		return nil, err
	}
	since := s.clock.Now().Add(-time.Duration(minutes) * time.Minute)
	unique, total, err := s.history.StatsWithin(ctx, zone.Center, zone.RadiusKM, since)
	if err != nil {
		return nil, err
	}

	id := zone.ID
	return &domain.PingStats{
		UniqueEntities: unique,
		TotalPings:     total,
		Minutes:        minutes,
		ZoneID:         &id,
	}, nil
}

func (s *statsService) window(ctx context.Context, minutes int) (*domain.PingStats, error) {
	since := s.clock.Now().Add(-time.Duration(minutes) * time.Minute)

	unique, err := s.history.CountUniqueEntities(ctx, since)
	if err != nil {
		return nil, err
	}

	total, err := s.history.CountPings(ctx, since)
	if err != nil {
		return nil, err
	}

	return &domain.PingStats{
		UniqueEntities: unique,
		TotalPings:     total,
		Minutes:        minutes,
	}, nil
}
