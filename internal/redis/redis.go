package redis

import (
	"context"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// GetClient returns the process-wide client for the configured redis.addr.
func GetClient() *redisv9.Client {
	once.Do(func() {
		client = NewClient(config.GetRedisAddr())
	})
	return client
}

// NewClient builds a client for addr without touching the singleton.
func NewClient(addr string) *redisv9.Client {
	return redisv9.NewClient(&redisv9.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
}

// Ping checks that the server behind c answers within the context deadline.
func Ping(ctx context.Context, c *redisv9.Client) error {
	return c.Ping(ctx).Err()
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
