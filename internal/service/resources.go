package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"disasterAlert/internal/domain"
)

// resourceService fronts the ledger and drops the shared zone cache after each write,
// since cached zones carry their resource counts.
type resourceService struct {
	ledger ResourceLedger
	cache  ZoneCache
	logger *slog.Logger
}

func NewResourceService(ledger ResourceLedger, cache ZoneCache, logger *slog.Logger) ResourceService {
	return &resourceService{ledger: ledger, cache: cache, logger: logger}
}

func (s *resourceService) Adjust(ctx context.Context, zoneID uuid.UUID, kind domain.ResourceKind, delta int64) (int64, error) {
	total, err := s.ledger.Adjust(ctx, zoneID, kind, delta)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, zoneID)
	return total, nil
}

func (s *resourceService) SetAll(ctx context.Context, zoneID uuid.UUID, res domain.Resources) error {
	if err := s.ledger.SetAll(ctx, zoneID, res); err != nil {
		return err
	}
	s.invalidate(ctx, zoneID)
	return nil
}

func (s *resourceService) Get(ctx context.Context, zoneID uuid.UUID) (domain.Resources, error) {
	return s.ledger.Get(ctx, zoneID)
}

func (s *resourceService) Aggregate(ctx context.Context, zoneIDs []uuid.UUID) (domain.Resources, error) {
	return s.ledger.Aggregate(ctx, zoneIDs)
}

func (s *resourceService) invalidate(ctx context.Context, zoneID uuid.UUID) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("zone cache invalidate failed",
			slog.String("zone_id", zoneID.String()),
			slog.Any("error", err),
		)
	}
}
