package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

const NotificationQueueKey = "notifications:queue"

type NotificationQueue struct {
	client *redis.Client
	key    string
}

func NewNotificationQueue(client *redis.Client, key string) *NotificationQueue {
	return &NotificationQueue{client: client, key: key}
}

func (q *NotificationQueue) Enqueue(ctx context.Context, n ...domain.Notification) error {
	if len(n) == 0 {
		return nil
	}
	values := make([]any, 0, len(n))
	for _, item := range n {
		b, err := json.Marshal(item)
		if err != nil {
			return err
		}
		values = append(values, b)
	}
	return q.client.LPush(ctx, q.key, values...).Err()
}

// BRPop waits up to timeout for the oldest notification.
func (q *NotificationQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.Notification, error) {
	var n domain.Notification

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return n, e.ErrNotificationQueueEmpty
		}
		return n, err
	}
	if len(res) < 2 {
		return n, e.ErrNotificationQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		return n, err
	}
	return n, nil
}

func (q *NotificationQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
