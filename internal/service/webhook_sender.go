package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"disasterAlert/internal/config"
	"disasterAlert/internal/domain"
	"disasterAlert/internal/observability"
	"disasterAlert/pkg/e"
)

const (
	webhookPollTimeout = 5 * time.Second
	webhookErrorPause  = 500 * time.Millisecond
)

// WebhookSender drains the notification queue and POSTs each notification to
// the configured webhook, the stand-in for SMS and push delivery.
type WebhookSender struct {
	logger  *slog.Logger
	cfg     config.WebhookConfig
	queue   NotificationSource
	http    *http.Client
	clock   clockwork.Clock
	metrics *observability.Metrics
}

func NewWebhookSender(
	logger *slog.Logger,
	cfg config.WebhookConfig,
	q NotificationSource,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) *WebhookSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSender{
		logger:  logger,
		cfg:     cfg,
		queue:   q,
		http:    &http.Client{Timeout: timeout},
		clock:   clock,
		metrics: metrics,
	}
}

func (s *WebhookSender) Run(ctx context.Context) {
	s.logger.Info("webhook sender started", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhook sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		n, err := s.queue.BRPop(ctx, webhookPollTimeout)
		if err != nil {
			if errors.Is(err, e.ErrNotificationQueueEmpty) || ctx.Err() != nil {
				continue
			}
			s.logger.Error("notification queue read failed", slog.Any("error", err))
			s.sleep(ctx, webhookErrorPause)
			continue
		}

		if err := s.Deliver(ctx, n); err != nil {
			s.logger.Error("notification dropped",
				slog.String("notification_id", n.ID.String()),
				slog.String("entity_id", n.EntityID.String()),
				slog.Any("error", err),
			)
		}
	}
}

// Deliver POSTs one notification, retrying with linear backoff. A 2xx response is success.
func (s *WebhookSender) Deliver(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		s.metrics.Notifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("marshal notification: %w", err)
	}

	attempts := max(s.cfg.MaxRetries, 1)
	var reason string
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		reason, err = s.post(ctx, body)
		if err != nil {
			return err
		}
		if reason == "" {
			s.metrics.Notifications.WithLabelValues("sent").Inc()
			s.logger.Debug("notification sent",
				slog.String("notification_id", n.ID.String()),
				slog.Int("attempt", attempt),
			)
			return nil
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)
		if attempt < attempts && !s.sleep(ctx, time.Duration(attempt)*s.cfg.RetryBackoff) {
			return ctx.Err()
		}
	}

	s.metrics.Notifications.WithLabelValues("failed").Inc()
	return fmt.Errorf("webhook: %d attempts: %s", attempts, reason)
}

// post returns a non-empty reason for a retryable failure and an error for a fatal one.
func (s *WebhookSender) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return err.Error(), nil
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return "", nil
	}
	return resp.Status, nil
}

func (s *WebhookSender) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-s.clock.After(d):
		return true
	}
}
