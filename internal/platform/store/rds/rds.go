// Package rds opens go-redis clients from a URL or bare address
package rds

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures a redis client
type Config struct {
	URL         string
	PingTimeout time.Duration
}

// newClient is a seam for tests
var newClient = redis.NewClient

// Open parses URL (redis://... or host:port), connects and pings once
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis: empty url")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.URL}
	}
	c := newClient(opt)

	to := cfg.PingTimeout
	if to <= 0 {
		to = 3 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, to)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}
