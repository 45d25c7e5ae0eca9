package common

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var RedisEnabled = true

// InitRedisClient connects to redis when REDIS_CONN_STRING is set. Redis is
// optional: without it sessions fall back to cookies, the ORM runs uncached and
// rate limiting falls back to the in-memory store.
func InitRedisClient() (err error) {
	connString := os.Getenv("REDIS_CONN_STRING")
	if connString == "" {
		RedisEnabled = false
		SysLog("REDIS_CONN_STRING not set, redis is not enabled")
		return nil
	}
	SysLog("redis is enabled")
	opt, err := redis.ParseURL(connString)
	if err != nil {
		FatalLog("failed to parse redis connection string: " + err.Error())
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = RDB.Ping(ctx).Result()
	return err
}

// ParseRedisOption re-parses the connection string for collaborators that need
// raw connection parameters, e.g. the session store.
func ParseRedisOption() *redis.Options {
	opt, err := redis.ParseURL(os.Getenv("REDIS_CONN_STRING"))
	if err != nil {
		FatalLog("failed to parse redis connection string: " + err.Error())
	}
	return opt
}
