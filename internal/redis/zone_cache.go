package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"disasterAlert/internal/domain"
)

const activeZonesKey = "zones:active"

// ZoneCache shares the active zone set between instances so a cold start does not need Postgres.
type ZoneCache struct {
	client *goredis.Client
	key    string
}

func NewZoneCache(client *goredis.Client) *ZoneCache {
	return &ZoneCache{client: client, key: activeZonesKey}
}

// GetActive returns the cached zones, or nil when nothing is cached.
func (c *ZoneCache) GetActive(ctx context.Context) ([]domain.Zone, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var zones []domain.Zone
	if err := json.Unmarshal(data, &zones); err != nil {
		return nil, err
	}

	return zones, nil
}

func (c *ZoneCache) SetActive(ctx context.Context, zones []domain.Zone, ttl time.Duration) error {
	b, err := json.Marshal(zones)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

func (c *ZoneCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
