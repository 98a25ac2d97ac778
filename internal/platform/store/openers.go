package store

import (
	"context"
	"fmt"
	"time"

	"truthlens/internal/platform/store/pg"
	"truthlens/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

// openPG builds the pool and publishes the adapter once a ping succeeds
// pings back off from 150ms up to 2s between attempts
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.LogTracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	wait := 150 * time.Millisecond
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, 2*time.Second)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

func openRDS(ctx context.Context, cfg Config) (*redis.Client, error) {
	return rds.Open(ctx, rds.Config{URL: cfg.RDS.URL})
}
