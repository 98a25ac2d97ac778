package cache

import (
	"context"
	"testing"
	"time"
)

func TestNewFactory_Backends(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"empty means none", Config{}, BackendNone, false},
		{"memory", Config{Backend: " Memory "}, BackendMemory, false},
		{"redis needs url", Config{Backend: "redis"}, "", true},
		{"redis with url", Config{Backend: "redis", RedisURL: "redis://localhost:6379/0"}, BackendRedis, false},
		{"unknown", Config{Backend: "etcd"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFactory(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Backend() != tc.want {
				t.Fatalf("backend=%q want %q", f.Backend(), tc.want)
			}
		})
	}
}

func TestFactory_NoneIsNoop(t *testing.T) {
	f, _ := NewFactory(Config{Backend: BackendNone})
	c, err := f.Open(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c.Available() {
		t.Fatal("noop must report unavailable")
	}
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("noop get should miss: ok=%v err=%v", ok, err)
	}
	if l, err := c.List(ctx, "k"); len(l) != 0 || err != nil {
		t.Fatalf("noop list: %v %v", l, err)
	}
}

func TestFactory_MemoryHandlesShareStore(t *testing.T) {
	f, _ := NewFactory(Config{Backend: BackendMemory})
	ctx := context.Background()
	a, _ := f.Open(ctx)
	b, _ := f.Open(ctx)

	if err := a.Set(ctx, ArticleKey("u"), []byte("one"), time.Minute); err != nil {
		t.Fatal(err)
	}
	v, ok, _ := b.Get(ctx, ArticleKey("u"))
	if !ok || string(v) != "one" {
		t.Fatalf("second handle should see write, got %q ok=%v", v, ok)
	}
	_ = a.Close()
	if _, ok, _ := b.Get(ctx, ArticleKey("u")); !ok {
		t.Fatal("closing one handle must not drop data")
	}
}

func TestMemory_LastWriterWins(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()
	_ = m.Set(ctx, "k", []byte("first"), time.Minute)
	_ = m.Set(ctx, "k", []byte("second"), time.Minute)
	v, _, _ := m.Get(ctx, "k")
	if string(v) != "second" {
		t.Fatalf("got %q", v)
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()
	_ = m.Set(ctx, "k", []byte("v"), 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()
	src := []byte("abc")
	_ = m.Set(ctx, "k", src, time.Minute)
	src[0] = 'z'
	v, _, _ := m.Get(ctx, "k")
	v[1] = 'z'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated: %q", again)
	}
}

func TestMemory_PushNewestFirst(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()
	key := ReportsKey("https://example.com/a")
	for _, s := range []string{"r1", "r2", "r3"} {
		if err := m.Push(ctx, key, []byte(s), ReportsTTL); err != nil {
			t.Fatal(err)
		}
	}
	got, err := m.List(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"r3", "r2", "r1"}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Fatalf("at %d got %q want %q", i, got[i], want[i])
		}
	}
}

func TestKeys(t *testing.T) {
	u := "https://example.com/x"
	if ArticleKey(u) != "article:"+u ||
		VerificationKey("id1") != "verification:id1" ||
		VerificationURLKey(u) != "verification:url:"+u ||
		ReportsKey(u) != "reports:"+u {
		t.Fatal("key layout changed")
	}
	if ArticleTTL != 3600*time.Second || VerificationTTL != 2592000*time.Second || ReportsTTL != 7776000*time.Second {
		t.Fatal("ttl changed")
	}
}
