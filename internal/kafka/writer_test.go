package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterAlert/internal/config"
	"disasterAlert/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	ev := domain.MembershipEvent{
		Type:       domain.EventEntered,
		EntityID:   uuid.MustParse("6f1c8a52-0c1e-4a3e-9c77-3b1b2a0d9e11"),
		Contact:    "anna@example.com",
		ZoneID:     uuid.MustParse("0d4f9e0b-7b7a-4f4e-8d3e-2b8a1c6f5e22"),
		ZoneKind:   "Flood",
		Tier:       domain.TierMedium,
		DistanceKM: 5.5,
		At:         now,
	}

	msg, err := serializeToMessage(ev)
	require.NoError(t, err)

	assert.Equal(t, []byte("6f1c8a52-0c1e-4a3e-9c77-3b1b2a0d9e11"), msg.Key)
	assert.Contains(t, string(msg.Value), `"type":"entered"`)
	assert.Contains(t, string(msg.Value), `"tier":"medium"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("entered"), msg.Headers[0].Value)
	assert.Equal(t, "zone_id", msg.Headers[1].Key)
	assert.Equal(t, []byte(ev.ZoneID.String()), msg.Headers[1].Value)
	assert.Equal(t, "occurred_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestSerializeToMessage_ExitOmitsTier(t *testing.T) {
	msg, err := serializeToMessage(domain.MembershipEvent{
		Type:     domain.EventExited,
		EntityID: uuid.New(),
		ZoneID:   uuid.New(),
		At:       time.Now(),
	})
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), `"tier"`)
}

func TestPublish_EmptyIsNoop(t *testing.T) {
	cfg := &config.Config{Kafka: config.KafkaConfig{Brokers: []string{"127.0.0.1:1"}, EventsTopic: "events"}}
	w := NewEventWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()

	require.NoError(t, w.Publish(context.Background(), nil))
}
