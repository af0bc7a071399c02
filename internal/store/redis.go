package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "folio:session:"

// RedisSession is a session store backed by Redis. Keys expire after ttl,
// which plays the role of "session end".
type RedisSession struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSession connects to addr, which is either host:port or a
// redis:// URL, and pings it.
func NewRedisSession(ctx context.Context, addr string, ttl time.Duration) (*RedisSession, error) {
	var opt *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: addr}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisSession{rdb: rdb, ttl: ttl}, nil
}

func (r *RedisSession) Close() error {
	return r.rdb.Close()
}

func (r *RedisSession) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session %q: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisSession) Set(ctx context.Context, key, value string) error {
	if err := checkSessionValue(value); err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	return nil
}

func (r *RedisSession) Remove(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("remove session %q: %w", key, err)
	}
	return nil
}
