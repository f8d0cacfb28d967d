package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

type entityService struct {
	repo     EntityRepository
	engine   *Engine
	tracking TrackingService
	clock    clockwork.Clock
	logger   *slog.Logger
}

func NewEntityService(
	repo EntityRepository,
	engine *Engine,
	tracking TrackingService,
	clock clockwork.Clock,
	logger *slog.Logger,
) EntityService {
	return &entityService{
		repo:     repo,
		engine:   engine,
		tracking: tracking,
		clock:    clock,
		logger:   logger,
	}
}

// Register stores a new user or volunteer. An initial location is processed as
// the entity's first ping, so registering inside a zone raises Entered at once.
func (s *entityService) Register(ctx context.Context, req domain.RegisterEntityRequest) (domain.RegisterEntityResponse, error) {
	ent := &domain.TrackedEntity{
		Role:    req.Role,
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Status:  domain.InitialStatus(req.Role),
	}
	if err := s.repo.Create(ctx, ent); err != nil {
		return domain.RegisterEntityResponse{}, err
	}
	s.engine.Tracker.Register(ent.ID, ent.Contact)

	s.logger.Info("entity registered",
		slog.String("entity_id", ent.ID.String()),
		slog.String("role", string(ent.Role)),
	)

	resp := domain.RegisterEntityResponse{Entity: ent}
	if req.Location == nil {
		return resp, nil
	}

	at := s.clock.Now().UTC()
	ping, err := s.tracking.ProcessPing(ctx, domain.LocationPing{
		EntityID:   ent.ID,
		Contact:    ent.Contact,
		Location:   *req.Location,
		RecordedAt: at,
	})
	if err != nil {
		s.logger.Error("initial location rejected",
			slog.String("entity_id", ent.ID.String()),
			slog.Any("error", err),
		)
		return resp, nil
	}

	loc := *req.Location
	ent.Location = &loc
	ent.LocatedAt = &at
	resp.Events = ping.Events
	resp.Zones = ping.Zones
	return resp, nil
}

// Get returns the stored entity together with its current zone memberships.
func (s *entityService) Get(ctx context.Context, id uuid.UUID) (*domain.TrackedEntity, error) {
	ent, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m, err := s.engine.Tracker.Memberships(id); err == nil && len(m) > 0 {
		ent.Memberships = m
	}
	return ent, nil
}

func (s *entityService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error {
	const op = "service.Entity.UpdateStatus"

	ent, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !status.ValidFor(ent.Role) {
		return fmt.Errorf("%s: status %q is not valid for %s: %w", op, status, ent.Role, e.ErrInvalidInput)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *entityService) Assign(ctx context.Context, volunteerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	const op = "service.Entity.Assign"

	if len(userIDs) == 0 {
		return nil, fmt.Errorf("%s: no users: %w", op, e.ErrInvalidInput)
	}
	for _, uid := range userIDs {
		if uid == volunteerID {
			return nil, fmt.Errorf("%s: volunteer cannot be assigned to itself: %w", op, e.ErrInvalidInput)
		}
	}

	ids, err := s.repo.Assign(ctx, volunteerID, userIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("volunteer assigned",
		slog.String("volunteer_id", volunteerID.String()),
		slog.Int("users", len(ids)),
	)
	return ids, nil
}

func (s *entityService) Unassign(ctx context.Context, volunteerID, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.Unassign(ctx, volunteerID, userID)
}

// Restore seeds the tracker from persisted locations without raising events.
// Entities whose stored location is unusable are skipped.
func (s *entityService) Restore(ctx context.Context) (int, error) {
	located, err := s.repo.ListLocated(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, ent := range located {
		if ent.Location == nil || ent.LocatedAt == nil {
			continue
		}
		if err := s.engine.Tracker.Restore(ent.ID, ent.Contact, *ent.Location, *ent.LocatedAt); err != nil {
			level := slog.LevelWarn
			if !errors.Is(err, e.ErrInvalidCoordinate) {
				level = slog.LevelError
			}
			s.logger.Log(ctx, level, "restore entity failed",
				slog.String("entity_id", ent.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		restored++
	}

	s.logger.Info("tracker restored", slog.Int("entities", restored))
	return restored, nil
}
