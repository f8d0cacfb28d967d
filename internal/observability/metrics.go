package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"disasterAlert/internal/domain"
)

const namespace = "disaster_alert"

// Metrics holds the Prometheus counters and gauges of the zone engine.
type Metrics struct {
	Pings            *prometheus.CounterVec // labels: outcome={accepted,stale,invalid,unknown_entity,error}
	MembershipEvents *prometheus.CounterVec // labels: type={entered,exited,tier_changed}

	LedgerConflicts   prometheus.Counter
	LedgerAdjustments *prometheus.CounterVec // labels: outcome={applied,negative,conflict,error}

	ActiveZones   prometheus.Gauge
	Notifications *prometheus.CounterVec // labels: outcome={sent,failed}
	PingQueue     prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Pings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pings_total",
			Help:      "Location pings processed by outcome.",
		}, []string{"outcome"}),
		MembershipEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_events_total",
			Help:      "Zone membership transitions by type.",
		}, []string{"type"}),
		LedgerConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_conflicts_total",
			Help:      "Optimistic write conflicts seen by the resource ledger.",
		}),
		LedgerAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_adjustments_total",
			Help:      "Resource adjustments by outcome.",
		}, []string{"outcome"}),
		ActiveZones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_zones",
			Help:      "Active zones in the in-process registry.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by outcome.",
		}, []string{"outcome"}),
		PingQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ping_queue_depth",
			Help:      "Pings waiting in the asynchronous dispatcher.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Pings,
		m.MembershipEvents,
		m.LedgerConflicts,
		m.LedgerAdjustments,
		m.ActiveZones,
		m.Notifications,
		m.PingQueue,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func (m *Metrics) ObserveEvents(events []domain.MembershipEvent) {
	for _, ev := range events {
		m.MembershipEvents.WithLabelValues(string(ev.Type)).Inc()
	}
}
