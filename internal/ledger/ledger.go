// Package ledger keeps per-zone resource counters.
//
// Every mutation is a read-modify-write under a per-zone lock, committed with an optimistic
// version check so that several processes sharing one store never lose an update. Version
// conflicts are retried a bounded number of times before ErrConflict is returned.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/moby/locker"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/observability"
	"disasterAlert/pkg/e"
)

const DefaultMaxAttempts = 3

// Store persists the resource map of a zone together with its version.
type Store interface {
	GetResources(ctx context.Context, zoneID uuid.UUID) (domain.Resources, int64, error)
	// CompareAndSwapResources writes res only if the stored version still equals version.
	// It returns the new version, e.ErrConflict on a version mismatch or e.ErrZoneNotFound.
	CompareAndSwapResources(ctx context.Context, zoneID uuid.UUID, version int64, res domain.Resources) (int64, error)
}

// Observer is told about every committed change, e.g. to refresh an in-memory zone copy.
type Observer interface {
	SetResources(zoneID uuid.UUID, res domain.Resources, version int64)
}

type Ledger struct {
	store       Store
	observer    Observer
	locks       *locker.Locker
	maxAttempts int
	metrics     *observability.Metrics
	logger      *slog.Logger
}

func New(store Store, observer Observer, maxAttempts int, metrics *observability.Metrics, logger *slog.Logger) *Ledger {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Ledger{
		store:       store,
		observer:    observer,
		locks:       locker.New(),
		maxAttempts: maxAttempts,
		metrics:     metrics,
		logger:      logger,
	}
}

// Adjust adds delta to one resource kind and returns the new total.
// A result below zero is rejected with *e.NegativeResultError and nothing is written.
func (l *Ledger) Adjust(ctx context.Context, zoneID uuid.UUID, kind domain.ResourceKind, delta int64) (int64, error) {
	const op = "ledger.Adjust"

	var total int64
	err := l.update(ctx, zoneID, func(cur domain.Resources) (domain.Resources, error) {
		have := cur[kind]
		next := have + delta
		if delta > 0 && next < have {
			return nil, fmt.Errorf("%s overflows: %w", kind, e.ErrInvalidInput)
		}
		if next < 0 {
			return nil, &e.NegativeResultError{Kind: string(kind), Current: have, Delta: delta}
		}
		out := cur.Clone()
		if out == nil {
			out = make(domain.Resources, 1)
		}
		out[kind] = next
		total = next
		return out, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// SetAll replaces the whole resource map of a zone.
func (l *Ledger) SetAll(ctx context.Context, zoneID uuid.UUID, res domain.Resources) error {
	const op = "ledger.SetAll"

	for kind, n := range res {
		if n < 0 {
			return fmt.Errorf("%s: %w", op, &e.NegativeResultError{Kind: string(kind), Current: 0, Delta: n})
		}
	}

	err := l.update(ctx, zoneID, func(domain.Resources) (domain.Resources, error) {
		return res.Clone(), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (l *Ledger) Get(ctx context.Context, zoneID uuid.UUID) (domain.Resources, error) {
	res, _, err := l.store.GetResources(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Aggregate sums the resources of the given zones. Repeated ids are counted once.
func (l *Ledger) Aggregate(ctx context.Context, zoneIDs []uuid.UUID) (domain.Resources, error) {
	const op = "ledger.Aggregate"

	seen := make(map[uuid.UUID]struct{}, len(zoneIDs))
	total := domain.Resources{}
	for _, id := range zoneIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		res, _, err := l.store.GetResources(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, id, err)
		}
		for k, n := range res {
			total[k] += n
		}
	}
	return total, nil
}

// Sum adds up the resources of zones without touching storage.
func Sum(zones []domain.Zone) domain.Resources {
	total := domain.Resources{}
	for _, z := range zones {
		for k, n := range z.Resources {
			total[k] += n
		}
	}
	return total
}

func (l *Ledger) update(ctx context.Context, zoneID uuid.UUID, mutate func(domain.Resources) (domain.Resources, error)) error {
	key := zoneID.String()
	l.locks.Lock(key)
	defer func() { _ = l.locks.Unlock(key) }()

	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		cur, version, err := l.store.GetResources(ctx, zoneID)
		if err != nil {
			l.metrics.LedgerAdjustments.WithLabelValues("error").Inc()
			return err
		}

		next, err := mutate(cur)
		if err != nil {
			if errors.Is(err, e.ErrNegativeResult) {
				l.metrics.LedgerAdjustments.WithLabelValues("negative").Inc()
			} else {
				l.metrics.LedgerAdjustments.WithLabelValues("error").Inc()
			}
			return err
		}

		newVersion, err := l.store.CompareAndSwapResources(ctx, zoneID, version, next)
		if errors.Is(err, e.ErrConflict) {
			l.metrics.LedgerConflicts.Inc()
			l.logger.Debug("ledger version conflict",
				slog.String("zone_id", zoneID.String()),
				slog.Int64("version", version),
				slog.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			l.metrics.LedgerAdjustments.WithLabelValues("error").Inc()
			return err
		}

		l.metrics.LedgerAdjustments.WithLabelValues("applied").Inc()
		if l.observer != nil {
			l.observer.SetResources(zoneID, next, newVersion)
		}
		return nil
	}

	l.metrics.LedgerAdjustments.WithLabelValues("conflict").Inc()
	l.logger.Warn("ledger gave up after repeated conflicts",
		slog.String("zone_id", zoneID.String()),
		slog.Int("attempts", l.maxAttempts),
	)
	return fmt.Errorf("%d attempts: %w", l.maxAttempts, e.ErrConflict)
}
