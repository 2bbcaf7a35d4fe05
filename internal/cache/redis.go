package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rp-projects/netball-api/internal/domain"
)

// LeaderboardCache keeps computed coach leaderboards in Redis for a
// short TTL. The service treats the cache as best-effort and works
// without it.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(redisURL string, ttl time.Duration) (*LeaderboardCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &LeaderboardCache{client: client, ttl: ttl}, nil
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

// Key builds the cache key for one coach/domain/count leaderboard.
func Key(coachID uuid.UUID, d domain.SkillDomain, count int) string {
	return fmt.Sprintf("leaderboard:%s:%s:%d", coachID, d, count)
}

// Get unmarshals a cached leaderboard into dest and reports whether the
// key was present.
func (c *LeaderboardCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
