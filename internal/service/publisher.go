package service

import (
	"context"
	"errors"
	"log/slog"

	"disasterAlert/internal/domain"
)

type eventPublisher struct {
	queue  NotificationQueue
	stream EventStream
	logger *slog.Logger
}

// NewEventPublisher fans events out to the notification queue and, when stream is non-nil, to the event stream.
func NewEventPublisher(queue NotificationQueue, stream EventStream, logger *slog.Logger) EventPublisher {
	return &eventPublisher{queue: queue, stream: stream, logger: logger}
}

func (p *eventPublisher) Publish(ctx context.Context, events []domain.MembershipEvent) error {
	if len(events) == 0 {
		return nil
	}

	ns := make([]domain.Notification, len(events))
	for i, ev := range events {
		ns[i] = domain.NotificationFromEvent(ev)
	}

	var errs []error
	if err := p.queue.Enqueue(ctx, ns...); err != nil {
		p.logger.Error("enqueue notifications failed", slog.Int("count", len(ns)), slog.Any("error", err))
		errs = append(errs, err)
	}
	if p.stream != nil {
		if err := p.stream.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
