package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const visitCounterKeyPrefix = "visits:"

type RedisVisitCounter struct {
	client *redis.Client
	name   string
}

func NewRedisVisitCounter(client *redis.Client, name string) *RedisVisitCounter {
	return &RedisVisitCounter{client: client, name: name}
}

func (c *RedisVisitCounter) Name() string { return c.name }

func (c *RedisVisitCounter) key() string { return visitCounterKeyPrefix + c.name }

func (c *RedisVisitCounter) Increment(ctx context.Context) (int64, error) {
	return c.client.Incr(ctx, c.key()).Result()
}

func (c *RedisVisitCounter) Count(ctx context.Context) (int64, error) {
	n, err := c.client.Get(ctx, c.key()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
