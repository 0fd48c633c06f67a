package cache

import (
	"testing"
	"time"

	"ceyquest-server/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisCache(mr.Addr()), mr
}

func TestLeaderboardSnapshotRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)

	grade := 10
	entries := []models.Leaderboard{
		{UserID: 1, Grade: 10, TotalXP: 300, QuizzesCompleted: 4, AverageScore: 8.5},
		{UserID: 2, Grade: 10, TotalXP: 200, QuizzesCompleted: 2, AverageScore: 6.0},
	}
	require.NoError(t, c.SetLeaderboard(&grade, 20, entries))

	got, err := c.GetLeaderboard(&grade, 20)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestLeaderboardSnapshotMiss(t *testing.T) {
	c, _ := newTestCache(t)

	grade := 10
	_, err := c.GetLeaderboard(&grade, 20)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestLeaderboardKeysAreScoped(t *testing.T) {
	c, _ := newTestCache(t)

	grade9, grade10 := 9, 10
	require.NoError(t, c.SetLeaderboard(&grade10, 20, []models.Leaderboard{{UserID: 1, Grade: 10, TotalXP: 100}}))

	// Different cohort and different page size are both misses.
	_, err := c.GetLeaderboard(&grade9, 20)
	assert.ErrorIs(t, err, redis.Nil)
	_, err = c.GetLeaderboard(&grade10, 5)
	assert.ErrorIs(t, err, redis.Nil)
	_, err = c.GetLeaderboard(nil, 20)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestLeaderboardSnapshotExpires(t *testing.T) {
	c, mr := newTestCache(t)

	grade := 10
	require.NoError(t, c.SetLeaderboard(&grade, 20, []models.Leaderboard{{UserID: 1, Grade: 10, TotalXP: 100}}))

	mr.FastForward(LeaderboardTTL + time.Second)

	_, err := c.GetLeaderboard(&grade, 20)
	assert.ErrorIs(t, err, redis.Nil)
}
