package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig locates the redis instance backing the account cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Cache calls fail fast; reads then fall back to storage.
const (
	redisDialTimeout = time.Second
	redisIOTimeout   = 250 * time.Millisecond
)

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
	})
}

// HealthCheck pings redis.
func (s *AccountCache) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Stats exposes the client's pool counters.
func (s *AccountCache) Stats() *redis.PoolStats {
	return s.client.PoolStats()
}

// Close closes the Redis client connection
func (s *AccountCache) Close() error {
	return s.client.Close()
}
