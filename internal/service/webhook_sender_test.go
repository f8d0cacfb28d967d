package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"disasterAlert/internal/config"
	"disasterAlert/internal/domain"
	"disasterAlert/internal/observability"
	"disasterAlert/internal/service"
	"disasterAlert/pkg/e"
)

// sliceSource hands out queued notifications, then reports an empty queue.
type sliceSource struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (s *sliceSource) BRPop(ctx context.Context, _ time.Duration) (domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Millisecond):
		}
		return domain.Notification{}, e.ErrNotificationQueueEmpty
	}
	n := s.items[0]
	s.items = s.items[1:]
	return n, nil
}

func newSender(url string, retries int, backoff time.Duration, clock clockwork.Clock, src service.NotificationSource) (*service.WebhookSender, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	cfg := config.WebhookConfig{URL: url, MaxRetries: retries, RetryBackoff: backoff, Timeout: time.Second}
	return service.NewWebhookSender(discardLogger(), cfg, src, clock, m), m
}

func TestWebhookSender_Deliver_OK(t *testing.T) {
	t.Parallel()

	n := domain.Notification{ID: uuid.New(), EntityID: uuid.New(), Contact: "a@example.com", Message: "You entered a Flood zone"}
	var got domain.Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender, m := newSender(srv.URL, 3, time.Second, clockwork.NewFakeClock(), &sliceSource{})
	if err := sender.Deliver(context.Background(), n); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != n.ID || got.Message != n.Message {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if v := testutil.ToFloat64(m.Notifications.WithLabelValues("sent")); v != 1 {
		t.Fatalf("expected 1 sent, got %v", v)
	}
}

func TestWebhookSender_Deliver_RetriesThenGivesUp(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender, m := newSender(srv.URL, 3, 0, clockwork.NewFakeClock(), &sliceSource{})
	if err := sender.Deliver(context.Background(), domain.Notification{ID: uuid.New()}); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
	if v := testutil.ToFloat64(m.Notifications.WithLabelValues("failed")); v != 1 {
		t.Fatalf("expected 1 failed, got %v", v)
	}
}

func TestWebhookSender_Deliver_LinearBackoff(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClock()
	sender, _ := newSender(srv.URL, 3, time.Second, clock, &sliceSource{})

	done := make(chan error, 1)
	go func() { done <- sender.Deliver(context.Background(), domain.Notification{ID: uuid.New()}) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// First retry waits 1s, the second 2s.
	for _, wait := range []time.Duration{time.Second, 2 * time.Second} {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("sender never waited: %v", err)
		}
		clock.Advance(wait - time.Millisecond)
		select {
		case <-done:
			t.Fatalf("sender retried before the %s backoff elapsed", wait)
		case <-time.After(20 * time.Millisecond):
		}
		clock.Advance(time.Millisecond)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	case <-ctx.Done():
		t.Fatalf("Deliver did not finish")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestWebhookSender_Run_DrainsQueueUntilCanceled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	src := &sliceSource{items: []domain.Notification{{ID: uuid.New()}, {ID: uuid.New()}}}
	sender, _ := newSender(srv.URL, 1, 0, clockwork.NewFakeClock(), src)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		sender.Run(ctx)
		close(stopped)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 deliveries, got %d", calls.Load())
	}
}
