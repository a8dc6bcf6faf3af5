package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScoreCache holds the latest fleet score per (user, goal). It is never the source of truth.
type ScoreCache interface {
	Get(ctx context.Context, userID int64, goal string) (float64, bool, error)
	Set(ctx context.Context, userID int64, goal string, score float64) error
	Delete(ctx context.Context, userID int64, goal string) error
}

type redisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreCache(client *redis.Client, ttl time.Duration) (ScoreCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return &redisScoreCache{client: client, ttl: ttl}, nil
}

func ScoreKey(userID int64, goal string) string {
	return fmt.Sprintf("fleet-score:%d:%s", userID, goal)
}

func (c *redisScoreCache) Get(ctx context.Context, userID int64, goal string) (float64, bool, error) {
	val, err := c.client.Get(ctx, ScoreKey(userID, goal)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read cached score: %w", err)
	}

	score, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse cached score %q: %w", val, err)
	}
	return score, true, nil
}

func (c *redisScoreCache) Set(ctx context.Context, userID int64, goal string, score float64) error {
	val := strconv.FormatFloat(score, 'f', -1, 64)
	if err := c.client.Set(ctx, ScoreKey(userID, goal), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache score: %w", err)
	}
	return nil
}

func (c *redisScoreCache) Delete(ctx context.Context, userID int64, goal string) error {
	if err := c.client.Del(ctx, ScoreKey(userID, goal)).Err(); err != nil {
		return fmt.Errorf("evict cached score: %w", err)
	}
	return nil
}
