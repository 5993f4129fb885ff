package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/dairy-ledger/pkg/logger"
)

const keyPrefix = "dairy:"

// Namespaces of cached read models
const (
	NSDashboard = "dashboard"
	NSCash      = "cash"
	NSInventory = "inventory"
)

// Financial lists the namespaces every money-moving write must invalidate
var Financial = []string{NSDashboard, NSCash}

// Cache is a JSON read-through cache on Redis. A nil client turns every
// call into a miss so the service runs without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache with a default TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl}
}

// NewClient connects to Redis; an empty addr disables caching
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Key builds a namespaced key. Long or free-form parts are hashed.
func Key(namespace string, parts ...string) string {
	raw := strings.Join(parts, ":")
	if len(raw) > 64 || strings.ContainsAny(raw, " *?[]") {
		sum := sha256.Sum256([]byte(raw))
		raw = hex.EncodeToString(sum[:])
	}
	return keyPrefix + namespace + ":" + raw
}

// Fetch returns the cached value for key or loads, stores and returns it
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var value T
	if c.enabled() {
		raw, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(raw, &value); jsonErr == nil {
				logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
				return value, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Cache read failed")
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c.enabled() {
		if raw, err := json.Marshal(value); err == nil {
			if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache value")
			}
		}
	}
	return value, nil
}

// Invalidate drops every key in the given namespaces. Errors are logged and
// swallowed since a stale read only lasts one TTL.
func (c *Cache) Invalidate(ctx context.Context, namespaces ...string) {
	if !c.enabled() {
		return
	}
	for _, ns := range namespaces {
		pattern := keyPrefix + ns + ":*"
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			logger.Warn(ctx).Err(err).Str("pattern", pattern).Msg("Cache scan failed")
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn(ctx).Err(err).Str("pattern", pattern).Msg("Cache invalidation failed")
			continue
		}
		logger.Debug(ctx).Int("count", len(keys)).Str("pattern", pattern).Msg("Cache invalidated")
	}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}
