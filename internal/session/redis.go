package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisURL = "redis://127.0.0.1:6379/0"
	keyPrefix       = "wtd"
)

// Redis keeps slots in Redis under a per-session namespace.
type Redis struct {
	rdb       *redis.Client
	sessionID string
	ttl       time.Duration
}

var _ Storage = (*Redis)(nil)

// NewRedis connects lazily to the Redis instance at rawURL.
func NewRedis(rawURL, sessionID string, ttl time.Duration) (*Redis, error) {
	if strings.TrimSpace(rawURL) == "" {
		rawURL = defaultRedisURL
	}
	opt, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisFromClient(redis.NewClient(opt), sessionID, ttl), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb *redis.Client, sessionID string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if strings.TrimSpace(sessionID) == "" {
		sessionID = NewSessionID()
	}
	return &Redis{rdb: rdb, sessionID: sessionID, ttl: ttl}
}

// Get implements Storage.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	data, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set implements Storage.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Remove implements Storage.
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

func (r *Redis) key(slot string) string {
	return keyPrefix + ":" + r.sessionID + ":" + slot
}
