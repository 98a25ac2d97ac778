package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in process backend on go-cache
// single key Get and Set are atomic; Push serializes list updates on one mutex
type Memory struct {
	c      *gocache.Cache
	listMu *sync.Mutex
}

// NewMemory returns a standalone memory cache
func NewMemory(cleanup time.Duration) *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, cleanup), listMu: &sync.Mutex{}}
}

func (m *Memory) Available() bool { return true }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.c.Set(key, append([]byte(nil), val...), expiry(ttl))
	return nil
}

func (m *Memory) Push(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.listMu.Lock()
	defer m.listMu.Unlock()
	var cur [][]byte
	if v, ok := m.c.Get(key); ok {
		cur, _ = v.([][]byte)
	}
	next := make([][]byte, 0, len(cur)+1)
	next = append(next, append([]byte(nil), val...))
	next = append(next, cur...)
	m.c.Set(key, next, expiry(ttl))
	return nil
}

func (m *Memory) List(_ context.Context, key string) ([][]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, nil
	}
	cur, _ := v.([][]byte)
	out := make([][]byte, len(cur))
	copy(out, cur)
	return out, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op; the store outlives any one handle
func (m *Memory) Close() error { return nil }

func expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return gocache.NoExpiration
	}
	return ttl
}
