package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/redis/go-redis/v9"
)

type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	Score       int    `json:"score"`
	Submissions int    `json:"submissions"`
	Rank        int    `json:"rank"`
}

type LeaderboardCache interface {
	Get(ctx context.Context, hackathonID string) ([]LeaderboardEntry, bool)
	Set(ctx context.Context, hackathonID string, entries []LeaderboardEntry)
	Invalidate(ctx context.Context, hackathonID string)
}

// RedisLeaderboardCache keeps computed leaderboards for a short TTL. The
// leaderboard stays near-real-time; a review invalidates the key so the next
// read recomputes.
type RedisLeaderboardCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func (c *RedisLeaderboardCache) key(hackathonID string) string {
	return "leaderboard:" + hackathonID
}

func (c *RedisLeaderboardCache) Get(ctx context.Context, hackathonID string) ([]LeaderboardEntry, bool) {
	val, err := c.Client.Get(ctx, c.key(hackathonID)).Result()
	if err != nil {
		if err != redis.Nil {
			logging.Log.Warnf("CACHE: leaderboard read failed: %v", err)
		}
		return nil, false
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		logging.Log.Warnf("CACHE: failed to unmarshal cached leaderboard: %v", err)
		return nil, false
	}
	return entries, true
}

func (c *RedisLeaderboardCache) Set(ctx context.Context, hackathonID string, entries []LeaderboardEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		logging.Log.Warnf("CACHE: failed to marshal leaderboard: %v", err)
		return
	}
	if err := c.Client.Set(ctx, c.key(hackathonID), data, c.TTL).Err(); err != nil {
		logging.Log.Warnf("CACHE: leaderboard write failed: %v", err)
	}
}

func (c *RedisLeaderboardCache) Invalidate(ctx context.Context, hackathonID string) {
	if err := c.Client.Del(ctx, c.key(hackathonID)).Err(); err != nil {
		logging.Log.Warnf("CACHE: leaderboard invalidation failed: %v", err)
	}
}

// NoopLeaderboardCache is used when no redis address is configured.
type NoopLeaderboardCache struct{}

func (NoopLeaderboardCache) Get(ctx context.Context, hackathonID string) ([]LeaderboardEntry, bool) {
	return nil, false
}
func (NoopLeaderboardCache) Set(ctx context.Context, hackathonID string, entries []LeaderboardEntry) {}
func (NoopLeaderboardCache) Invalidate(ctx context.Context, hackathonID string)                      {}
