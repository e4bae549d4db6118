package database

import (
	"context"
	"log"
	"time"

	"portal/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis connects the shared redis client used for the question cache
// and per-user submission locks. The portal degrades gracefully without it.
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Println("Redis unavailable, caching and submit locks fall back to in-process: ", err)
		RDB = nil
	}
}
