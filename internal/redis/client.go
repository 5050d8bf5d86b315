package redis

import (
	"cafe_pos/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Client stores POS collections as plain Redis strings under prefixed keys.
type Client struct {
	rdb    *redis.Client
	prefix string
}

func Initialize(ctx context.Context, redisURL, prefix string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewClient(rdb, prefix), nil
}

func NewClient(rdb *redis.Client, prefix string) *Client {
	return &Client{rdb: rdb, prefix: prefix}
}

func (c *Client) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

// Save stores the blob without expiry.
func (c *Client) Save(ctx context.Context, key string, blob []byte) error {
	if err := c.rdb.Set(ctx, c.prefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

var _ storage.Gateway = (*Client)(nil)
