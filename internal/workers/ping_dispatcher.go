package workers

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"sync/atomic"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/observability"
	"disasterAlert/pkg/e"
)

type PingProcessor interface {
	ProcessPing(ctx context.Context, ping domain.LocationPing) (domain.PingResponse, error)
}

// PingDispatcher processes pings asynchronously. Pings are sharded by entity id
// and each shard has a single worker, so one entity's pings are handled in
// submission order while different entities proceed in parallel.
type PingDispatcher struct {
	processor PingProcessor
	shards    []chan domain.LocationPing
	depth     atomic.Int64
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewPingDispatcher(processor PingProcessor, workers, queueSize int, metrics *observability.Metrics, logger *slog.Logger) *PingDispatcher {
	workers = max(workers, 1)
	perShard := max(queueSize/workers, 1)

	shards := make([]chan domain.LocationPing, workers)
	for i := range shards {
		shards[i] = make(chan domain.LocationPing, perShard)
	}
	return &PingDispatcher{
		processor: processor,
		shards:    shards,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit queues a ping without blocking. A full shard yields e.ErrQueueFull.
func (d *PingDispatcher) Submit(ping domain.LocationPing) error {
	ch := d.shards[shardFor(ping, len(d.shards))]
	select {
	case ch <- ping:
		d.metrics.PingQueue.Set(float64(d.depth.Add(1)))
		return nil
	default:
		return e.ErrQueueFull
	}
}

func (d *PingDispatcher) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i, ch := range d.shards {
		i, ch := i, ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.worker(ctx, i, ch)
		}()
	}
	wg.Wait()
}

func (d *PingDispatcher) worker(ctx context.Context, shard int, pings <-chan domain.LocationPing) {
	for {
		select {
		case <-ctx.Done():
			if n := len(pings); n > 0 {
				d.logger.Warn("ping dispatcher stopped with queued pings",
					slog.Int("shard", shard),
					slog.Int("dropped", n),
				)
			}
			return
		case ping := <-pings:
			d.metrics.PingQueue.Set(float64(d.depth.Add(-1)))
			if _, err := d.processor.ProcessPing(ctx, ping); err != nil {
				d.logger.Debug("async ping rejected",
					slog.Int("shard", shard),
					slog.String("entity_id", ping.EntityID.String()),
					slog.Any("error", err),
				)
			}
		}
	}
}

func shardFor(ping domain.LocationPing, n int) int {
	h := fnv.New32a()
	_, _ = h.Write(ping.EntityID[:])
	return int(h.Sum32() % uint32(n))
}
