package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect accepts either a redis:// URL or a plain host:port address and
// pings the server once.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

const chargeStatusPrefix = "billing:charge_status:"

// ChargeStatusCache remembers charge statuses that can no longer change.
type ChargeStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChargeStatusCache(client *redis.Client, ttl time.Duration) *ChargeStatusCache {
	return &ChargeStatusCache{client: client, ttl: ttl}
}

// Get returns ("", false, nil) on a miss.
func (c *ChargeStatusCache) Get(ctx context.Context, chargeID string) (string, bool, error) {
	v, err := c.client.Get(ctx, chargeStatusPrefix+chargeID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *ChargeStatusCache) Set(ctx context.Context, chargeID, status string) error {
	return c.client.Set(ctx, chargeStatusPrefix+chargeID, status, c.ttl).Err()
}
