package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the OTP attempt and resend guard
type RedisClient struct{ *redis.Client }

// NewRedis creates a client; no connection is made until first use
func NewRedis(addr, pass string, db int) *RedisClient {
	return &RedisClient{redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// Ping verifies the server is reachable
func (c *RedisClient) Ping(ctx context.Context) error { return c.Client.Ping(ctx).Err() }
