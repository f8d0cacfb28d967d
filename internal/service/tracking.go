package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/observability"
	"disasterAlert/pkg/e"
)

type trackingService struct {
	engine    *Engine
	entities  EntityRepository
	history   PingHistory
	publisher EventPublisher
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewTrackingService(
	engine *Engine,
	entities EntityRepository,
	history PingHistory,
	publisher EventPublisher,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *slog.Logger,
) TrackingService {
	return &trackingService{
		engine:    engine,
		entities:  entities,
		history:   history,
		publisher: publisher,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

// ProcessPing runs one ping through the membership tracker, then persists the
// position, records it in the ping history and publishes the resulting events.
// Only the tracker step can reject a ping; later failures are logged.
func (s *trackingService) ProcessPing(ctx context.Context, ping domain.LocationPing) (domain.PingResponse, error) {
	const op = "service.Tracking.ProcessPing"

	if ping.RecordedAt.IsZero() {
		ping.RecordedAt = s.clock.Now().UTC()
	}

	events, matches, err := s.engine.Tracker.ProcessPing(ping)
	if errors.Is(err, e.ErrEntityNotFound) {
		// Entities registered before a restart without a location are loaded lazily.
		if err = s.hydrate(ctx, ping); err == nil {
			events, matches, err = s.engine.Tracker.ProcessPing(ping)
		}
	}
	if err != nil {
		s.metrics.Pings.WithLabelValues(pingOutcome(err)).Inc()
		s.logger.Info("ping rejected",
			slog.String("entity_id", ping.EntityID.String()),
			slog.Any("error", err),
		)
		return domain.PingResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Pings.WithLabelValues("accepted").Inc()
	s.metrics.ObserveEvents(events)

	if err := s.entities.UpdateLocation(ctx, ping.EntityID, ping.Location, ping.RecordedAt); err != nil {
		s.logger.Warn("persist location failed",
			slog.String("op", op),
			slog.String("entity_id", ping.EntityID.String()),
			slog.Any("error", err),
		)
	}

	if ping.Contact == "" {
		ping.Contact, _ = s.engine.Tracker.Contact(ping.EntityID)
	}
	if err := s.history.Save(ctx, ping); err != nil {
		s.logger.Error("save ping history failed",
			slog.String("op", op),
			slog.String("entity_id", ping.EntityID.String()),
			slog.Any("error", err),
		)
	}

	if len(events) > 0 {
		if err := s.publisher.Publish(ctx, events); err != nil {
			s.logger.Error("publish membership events failed",
				slog.String("op", op),
				slog.Int("events", len(events)),
				slog.Any("error", err),
			)
		}
		for _, ev := range events {
			s.logger.Info("membership changed",
				slog.String("type", string(ev.Type)),
				slog.String("entity_id", ev.EntityID.String()),
				slog.String("zone_id", ev.ZoneID.String()),
				slog.String("tier", string(ev.Tier)),
			)
		}
	}

	if events == nil {
		events = []domain.MembershipEvent{}
	}
	if matches == nil {
		matches = []domain.ZoneMatch{}
	}
	return domain.PingResponse{Events: events, Zones: matches}, nil
}

func (s *trackingService) hydrate(ctx context.Context, ping domain.LocationPing) error {
	ent, err := s.entities.Get(ctx, ping.EntityID)
	if err != nil {
		return err
	}
	if ent.Location != nil && ent.LocatedAt != nil {
		return s.engine.Tracker.Restore(ent.ID, ent.Contact, *ent.Location, *ent.LocatedAt)
	}
	s.engine.Tracker.Register(ent.ID, ent.Contact)
	return nil
}

func pingOutcome(err error) string {
	switch {
	case errors.Is(err, e.ErrStalePing):
		return "stale"
	case errors.Is(err, e.ErrInvalidCoordinate):
		return "invalid"
	case errors.Is(err, e.ErrNotFound):
		return "unknown_entity"
	default:
		return "error"
	}
}
