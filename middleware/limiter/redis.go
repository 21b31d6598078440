package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowScript counts one hit and arms the window TTL in a single step. A
// counter that lost its TTL gets one again, so a key can never stick.
var windowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RedisLimiter is a fixed-window counter shared by every relay replica
// pointing at the same Redis.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	size   time.Duration
}

// RedisConfig holds Redis configuration for the limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisLimiter allows max requests per key in every window of size.
func NewRedisLimiter(config *RedisConfig, max int, size time.Duration) *RedisLimiter {
	if config == nil {
		config = &RedisConfig{Addr: "localhost:6379"}
	}
	if config.Prefix == "" {
		config.Prefix = "deadchat:ratelimit:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisLimiter{
		client: client,
		prefix: config.Prefix,
		max:    max,
		size:   size,
	}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := windowScript.Run(ctx, l.client, []string{l.prefix + key}, l.size.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	return n <= int64(l.max), nil
}

// Ping checks connectivity.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
