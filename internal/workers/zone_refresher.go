package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

type ZoneRefreshService interface {
	Refresh(ctx context.Context) error
}

// ZoneRefresher periodically reloads the zone set so that instances converge on
// zones changed elsewhere.
type ZoneRefresher struct {
	zones    ZoneRefreshService
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

func NewZoneRefresher(zones ZoneRefreshService, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *ZoneRefresher {
	return &ZoneRefresher{zones: zones, interval: interval, clock: clock, logger: logger}
}

func (r *ZoneRefresher) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := r.zones.Refresh(ctx); err != nil {
				r.logger.Error("zone refresh failed", slog.Any("error", err))
			}
		}
	}
}
