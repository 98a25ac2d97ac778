//go:build integration_redis
// +build integration_redis

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) (url string, stop func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start redis container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port()), func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func TestRedis_Integration(t *testing.T) {
	url, stop := startRedis(t)
	defer stop()

	f, err := NewFactory(Config{Backend: BackendRedis, RedisURL: url})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	a, err := f.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()
	b, err := f.Open(ctx)
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	defer b.Close()

	if _, ok, err := a.Get(ctx, ArticleKey("missing")); ok || err != nil {
		t.Fatalf("miss expected: ok=%v err=%v", ok, err)
	}
	if err := a.Set(ctx, ArticleKey("u"), []byte(`{"x":1}`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(ctx, ArticleKey("u"), []byte(`{"x":2}`), time.Minute); err != nil {
		t.Fatal(err)
	}
	v, ok, err := a.Get(ctx, ArticleKey("u"))
	if err != nil || !ok || string(v) != `{"x":2}` {
		t.Fatalf("last writer should win: %q ok=%v err=%v", v, ok, err)
	}

	key := ReportsKey("u")
	_ = a.Push(ctx, key, []byte("r1"), ReportsTTL)
	_ = b.Push(ctx, key, []byte("r2"), ReportsTTL)
	l, err := a.List(ctx, key)
	if err != nil || len(l) != 2 || string(l[0]) != "r2" {
		t.Fatalf("list: %q err=%v", l, err)
	}
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
