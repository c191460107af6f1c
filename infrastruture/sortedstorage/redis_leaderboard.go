package sortedstorage

import (
	"context"

	"github.com/beka-birhanu/maze-arena/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisLeaderboard keeps per-agent score totals in a Redis sorted set.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard over the provided Redis
// client, storing totals under the given key.
func NewRedisLeaderboard(client *redis.Client, key string) (i.Leaderboard, error) {
	board := &RedisLeaderboard{
		client: client,
		key:    key,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// RecordScores adds the given scores to the agents' running totals. The
// whole batch is applied under a distributed lock so one match's results are
// never interleaved with another's.
func (rl *RedisLeaderboard) RecordScores(ctx context.Context, scores map[string]float64) error {
	mutex := rl.locker.NewMutex(rl.key + ":update_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	for agent, score := range scores {
		if err := rl.client.ZIncrBy(ctx, rl.key, score, agent).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Top returns the highest ranked agents, best first.
func (rl *RedisLeaderboard) Top(ctx context.Context, limit int64) ([]i.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	ranked, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(ranked))
	for _, z := range ranked {
		entries = append(entries, i.LeaderboardEntry{
			Agent: z.Member.(string),
			Score: z.Score,
		})
	}
	return entries, nil
}
