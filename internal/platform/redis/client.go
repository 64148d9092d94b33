package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"kyntel/internal/platform/config"
)

// Client wraps go-redis with the health probe the /healthz handler expects.
// The assessment cache is the only consumer; a nil Client means caching is
// disabled and every assessment is recomputed.
type Client struct {
	*redis.Client
}

// New connects to the assessment cache. An empty URL returns (nil, nil) so
// callers can treat caching as optional.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	// Fail startup fast on a misconfigured cache rather than surfacing it as
	// a miss storm later. The ping is bounded by the same dial timeout the
	// pool uses.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the cache connection is live.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
