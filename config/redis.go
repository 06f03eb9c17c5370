package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis connects the client used by the rate limiting middleware. Redis
// being down is not fatal: the limiter falls back to allowing traffic.
func InitRedis() {
	addr := Getenv("REDIS_ADDR", "localhost:6379")

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: Getenv("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Printf("Redis not reachable at %s: %v (rate limiting disabled)", addr, err)
		Redis = nil
		return
	}
	log.Println("Redis connected at", addr)
}
