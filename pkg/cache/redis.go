package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ceyquest-server/internal/models"

	"github.com/go-redis/redis/v8"
)

// LeaderboardTTL bounds how stale a cached cohort snapshot can get. The
// backing projection table is itself refreshed out-of-band, so a short TTL
// here only adds to an already-permitted staleness window.
const LeaderboardTTL = 30 * time.Second

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

// leaderboardKey builds one cache key per (cohort, page size) pair. grade nil
// means the cross-grade board.
func leaderboardKey(grade *int, limit int) string {
	if grade == nil {
		return fmt.Sprintf("leaderboard:all:%d", limit)
	}
	return fmt.Sprintf("leaderboard:grade:%d:%d", *grade, limit)
}

func (c *RedisCache) SetLeaderboard(grade *int, limit int, entries []models.Leaderboard) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, leaderboardKey(grade, limit), data, LeaderboardTTL).Err()
}

// GetLeaderboard returns the cached snapshot, or redis.Nil on a miss.
func (c *RedisCache) GetLeaderboard(grade *int, limit int) ([]models.Leaderboard, error) {
	data, err := c.client.Get(c.ctx, leaderboardKey(grade, limit)).Bytes()
	if err != nil {
		return nil, err
	}

	var entries []models.Leaderboard
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *RedisCache) Ping() error {
	return c.client.Ping(c.ctx).Err()
}
