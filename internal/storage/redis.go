package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tableside/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps resolved customer sessions close to the polling dashboard
// so the high-frequency refresh path does not hit Postgres on every poll.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) SessionKey(token string) string {
	return "session:" + token
}

// GetSession returns (nil, nil) on a cache miss.
func (c *RedisCache) GetSession(ctx context.Context, key string) (*domain.CustomerSession, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session domain.CustomerSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *RedisCache) SetSession(ctx context.Context, key string, session *domain.CustomerSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, ttl).Err()
}
