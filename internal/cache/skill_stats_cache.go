package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/pkg/circuitbreaker"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"github.com/talentmap/talentmap-api/pkg/retry"
	"go.uber.org/zap"
)

const skillStatsKey = "talentmap:skills:stats"

// NewRedisClient parses a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	err = retry.Do(ctx, retry.RedisConfig(), "redis_ping", func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// SkillStatsCache shares the aggregated skill statistics between API
// instances so each replica does not re-aggregate the whole directory.
// Reads and writes go through a circuit breaker; while it is open callers
// get an error immediately and fall back to aggregating locally.
type SkillStatsCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewSkillStatsCache creates a new Redis backed skill stats cache
func NewSkillStatsCache(client *redis.Client, ttlSeconds int) *SkillStatsCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SkillStatsCache{
		client:  client,
		ttl:     ttl,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("redis_skill_stats")),
	}
}

// Get returns the cached stats. found is false on a miss.
func (c *SkillStatsCache) Get(ctx context.Context) (stats []models.SkillStat, found bool, err error) {
	start := time.Now()

	raw, err := circuitbreaker.Execute(c.breaker, func() ([]byte, error) {
		b, err := c.client.Get(ctx, skillStatsKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	duration := metrics.MeasureDuration(start)

	if err != nil {
		logger.LogAPICall("redis", "get_skill_stats", "error", duration, zap.Error(err))
		return nil, false, fmt.Errorf("failed to read skill stats: %w", err)
	}
	if raw == nil {
		metrics.CacheMisses.WithLabelValues("skill_stats").Inc()
		return nil, false, nil
	}

	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.Warn("Discarding unreadable skill stats entry", zap.Error(err))
		_ = c.client.Del(ctx, skillStatsKey).Err()
		metrics.CacheMisses.WithLabelValues("skill_stats").Inc()
		return nil, false, nil
	}

	metrics.CacheHits.WithLabelValues("skill_stats").Inc()
	logger.LogAPICall("redis", "get_skill_stats", "success", duration, zap.Int("count", len(stats)))
	return stats, true, nil
}

// Set stores the stats for the configured TTL
func (c *SkillStatsCache) Set(ctx context.Context, stats []models.SkillStat) error {
	start := time.Now()

	if circuitbreaker.IsOpen(c.breaker) {
		logger.Debug("Skipping skill stats write while the Redis circuit is open")
		return nil
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode skill stats: %w", err)
	}

	_, err = circuitbreaker.Execute(c.breaker, func() (string, error) {
		return c.client.Set(ctx, skillStatsKey, raw, c.ttl).Result()
	})
	duration := metrics.MeasureDuration(start)
	if err != nil {
		logger.LogAPICall("redis", "set_skill_stats", "error", duration, zap.Error(err))
		return fmt.Errorf("failed to write skill stats: %w", err)
	}

	metrics.CacheSize.WithLabelValues("skill_stats").Set(float64(len(stats)))
	logger.LogAPICall("redis", "set_skill_stats", "success", duration, zap.Int("count", len(stats)))
	return nil
}

// Invalidate removes the cached stats
func (c *SkillStatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, skillStatsKey).Err()
}

// Ping checks the Redis connection
func (c *SkillStatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
