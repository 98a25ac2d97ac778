// Package store opens the optional postgres and redis backends behind one facade
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"truthlens/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Config selects and configures backends; a disabled backend stays nil
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	PG  PGConfig
	RDS RedisConfig
}

// PGConfig configures the report store pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot pings: ConnectRetries attempts of PingTimeout each, default 20 x 3s
	ConnectRetries int
	PingTimeout    time.Duration
}

// RedisConfig configures the client used for readiness checks
type RedisConfig struct {
	Enabled bool
	URL     string
}

// Store holds whichever backends were enabled
// the zero value is a valid store with none
type Store struct {
	Log logger.Logger

	// PG is nil unless postgres is enabled
	PG TxRunner

	// RDS backs readiness only; cache handles own their clients
	RDS *redis.Client
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the statement surface repos are written against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions to RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option adjusts a Store before backends open
type Option func(*Store)

// WithLogger sets the logger handed to backend tracers
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open opens every enabled backend; on error anything already opened is closed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}
	if cfg.RDS.Enabled {
		c, err := openRDS(ctx, cfg)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.RDS = c
	}
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p := s.PGPinger(); p != nil {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if p := s.RedisPinger(); p != nil {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// PGPinger is nil when postgres is off
func (s *Store) PGPinger() Pinger {
	if s == nil {
		return nil
	}
	p, _ := s.PG.(Pinger)
	return p
}

type redisPinger struct{ c *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }

// RedisPinger is nil when redis is off
func (s *Store) RedisPinger() Pinger {
	if s == nil || s.RDS == nil {
		return nil
	}
	return redisPinger{c: s.RDS}
}
