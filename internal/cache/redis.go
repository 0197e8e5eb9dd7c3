package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client        redis.Cmdable
	evaluationTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		time.Duration(cfg.EvaluationTTLSecs)*time.Second,
	)
}

func NewRedisCacheWithClient(client redis.Cmdable, evaluationTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, evaluationTTL: evaluationTTL}
}

// GetEvaluation returns nil without error on a cache miss.
func (c *RedisCache) GetEvaluation(ctx context.Context, key string) (*domain.Evaluation, error) {
	data, err := c.client.Get(ctx, evaluationKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var e domain.Evaluation
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *RedisCache) SetEvaluation(ctx context.Context, key string, e domain.Evaluation) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, evaluationKey(key), payload, c.evaluationTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client when it owns a connection pool.
func (c *RedisCache) Close() error {
	if closer, ok := c.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func evaluationKey(key string) string {
	return "cache:evaluation:" + key
}
