package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog-post-service/internal/custom_errors"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

const (
	PostKeyPrefix  = "post:"
	DefaultPostTTL = 30 * time.Minute
)

// Commander is the part of redis.Cmdable the post cache needs.
type Commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Connect dials Redis and checks it answers a PING.
func Connect(cfg config.Redis, log ports.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		log.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Successfully connected to Redis", slog.String("address", rdb.Options().Addr))
	return rdb, nil
}

// Client stores JSON documents under PostKeyPrefix+id with a fixed TTL.
type Client struct {
	rdb Commander
	ttl time.Duration
	log ports.Logger
}

func NewClient(rdb Commander, ttl time.Duration, log ports.Logger) *Client {
	if ttl <= 0 {
		ttl = DefaultPostTTL
	}
	return &Client{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func postKey(id string) string {
	return PostKeyPrefix + id
}

func (c *Client) TTL() time.Duration {
	return c.ttl
}

// GetJSON decodes the document stored for id into dest.
// A missing key yields custom_errors.ErrCacheMiss.
func (c *Client) GetJSON(ctx context.Context, id string, dest any) error {
	key := postKey(id)

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return custom_errors.ErrCacheMiss
		}
		c.log.Error("Failed to read post from Redis",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		c.log.Error("Cached post is not valid JSON",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("decode cached post %s: %w", key, err)
	}
	return nil
}

func (c *Client) SetJSON(ctx context.Context, id string, value any) error {
	key := postKey(id)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode post %s: %w", key, err)
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("Failed to write post to Redis",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the document for id. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	key := postKey(id)

	removed, err := c.rdb.Del(ctx, key).Result()
	if err != nil {
		c.log.Error("Failed to delete post from Redis",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	c.log.Debug("Post key deleted", slog.String("key", key), slog.Int64("removed", removed))
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
