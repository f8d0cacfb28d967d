package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"disasterAlert/internal/config"
	"disasterAlert/internal/domain"
)

// EventWriter produces membership events to a Kafka topic, keyed by entity id
// so one entity's events land on one partition in order.
type EventWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

func NewEventWriter(cfg *config.Config, logger *slog.Logger) *EventWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.EventsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &EventWriter{writer: w, logger: logger}
}

// Publish writes every event in a single WriteMessages call.
func (w *EventWriter) Publish(ctx context.Context, events []domain.MembershipEvent) error {
	const op = "kafka.EventWriter.Publish"

	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.logger.Error("kafka write failed",
			slog.String("op", op),
			slog.Int("events", len(events)),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (w *EventWriter) Close() error {
	return w.writer.Close()
}

func serializeToMessage(ev domain.MembershipEvent) (kafkago.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize membership event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(ev.EntityID.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
			{Key: "zone_id", Value: []byte(ev.ZoneID.String())},
			{Key: "occurred_at", Value: []byte(ev.At.Format(time.RFC3339))},
		},
	}, nil
}
