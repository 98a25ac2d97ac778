// Package cache is the shared key value store for analysis results, verifications and report lists
// A cache may be unavailable; every operation then succeeds as a no-op or a miss
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"truthlens/internal/platform/store/rds"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a last-writer-wins key value store with per key expiry
type Cache interface {
	// Available reports whether a backend is configured
	Available() bool
	// Get returns the value for key; ok is false when missing or expired
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	// Set overwrites key and resets its expiry
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// Push prepends val to the list at key and resets the list expiry
	Push(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// List returns the list at key, newest first
	List(ctx context.Context, key string) ([][]byte, error)
	// Ping checks the backend
	Ping(ctx context.Context) error
	// Close releases this handle
	Close() error
}

// Backend names
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures the backend
type Config struct {
	Backend  string
	RedisURL string
	// MemoryCleanup is how often expired memory entries are purged
	MemoryCleanup time.Duration
}

// Factory opens independent handles onto one configured backend
// memory handles share a single in process store so they observe each other's writes
type Factory struct {
	cfg Config

	once sync.Once
	mem  *gocache.Cache
	mu   *sync.Mutex
}

// NewFactory validates cfg and returns a Factory
func NewFactory(cfg Config) (*Factory, error) {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case "":
		cfg.Backend = BackendNone
	case BackendNone, BackendMemory:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("cache: redis backend requires a url")
		}
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
	if cfg.MemoryCleanup <= 0 {
		cfg.MemoryCleanup = 10 * time.Minute
	}
	return &Factory{cfg: cfg}, nil
}

// Backend returns the configured backend name
func (f *Factory) Backend() string { return f.cfg.Backend }

// Open returns a new handle; redis handles own their own connection pool
func (f *Factory) Open(ctx context.Context) (Cache, error) {
	switch f.cfg.Backend {
	case BackendRedis:
		c, err := rds.Open(ctx, rds.Config{URL: f.cfg.RedisURL})
		if err != nil {
			return nil, err
		}
		return NewRedis(c), nil
	case BackendMemory:
		f.once.Do(func() {
			f.mem = gocache.New(gocache.NoExpiration, f.cfg.MemoryCleanup)
			f.mu = &sync.Mutex{}
		})
		return &Memory{c: f.mem, listMu: f.mu}, nil
	default:
		return Noop{}, nil
	}
}

// Noop is the cache used when no backend is configured
type Noop struct{}

func (Noop) Available() bool { return false }

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Push(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) List(context.Context, string) ([][]byte, error) { return nil, nil }

func (Noop) Ping(context.Context) error { return nil }

func (Noop) Close() error { return nil }
