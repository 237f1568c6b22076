package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisCache guarda los valores en Redis. Con client nil degrada a no cachear.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

// NewRedisCache conecta a REDIS_URL. Si Redis no responde retorna un caché sin cliente
// para que la API siga funcionando sin caché.
func NewRedisCache(url string, ttl time.Duration, log logrus.FieldLogger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unavailable, caching disabled")
		_ = client.Close()
		return &RedisCache{ttl: ttl, log: log}, nil
	}
	return &RedisCache{client: client, ttl: ttl, log: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// DeleteByPrefix recorre las claves con SCAN, nunca con KEYS
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// IsAvailable indica si hay conexión a Redis
func (c *RedisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping verifica la conexión con Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("redis unavailable")
	}
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
