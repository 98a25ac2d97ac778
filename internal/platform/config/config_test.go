package config

import (
	"slices"
	"testing"
	"time"

	kit "truthlens/internal/platform/testkit"
)

func TestPrefixStacks(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.Key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key = %q", got)
	}
	t.Setenv("CORE_API_PORT", " :9000 ")
	if got := c.MayString("PORT", ":8000"); got != ":9000" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayParsers(t *testing.T) {
	c := New().Prefix("ENRICH_")
	t.Setenv("ENRICH_WORKERS", "3")
	t.Setenv("ENRICH_RATE", "2.5")
	t.Setenv("ENRICH_DEBUG", "true")
	t.Setenv("ENRICH_DELAY", "250ms")
	t.Setenv("ENRICH_BAD_INT", "three")
	t.Setenv("ENRICH_BAD_DUR", "soon")

	if got := c.MayInt("WORKERS", 1); got != 3 {
		t.Errorf("MayInt = %d", got)
	}
	if got := c.MayFloat64("RATE", 1); got != 2.5 {
		t.Errorf("MayFloat64 = %v", got)
	}
	if !c.MayBool("DEBUG", false) {
		t.Error("MayBool = false")
	}
	if got := c.MayDuration("DELAY", time.Second); got != 250*time.Millisecond {
		t.Errorf("MayDuration = %v", got)
	}

	// unset and unparsable both fall back
	if got := c.MayInt("MISSING", 7); got != 7 {
		t.Errorf("missing int = %d", got)
	}
	if got := c.MayInt("BAD_INT", 7); got != 7 {
		t.Errorf("bad int = %d", got)
	}
	if got := c.MayDuration("BAD_DUR", time.Second); got != time.Second {
		t.Errorf("bad duration = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New()
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example ")
	if got := c.MayCSV("CORS_ORIGINS", nil); !slices.Equal(got, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	t.Setenv("CORS_ORIGINS", " , ")
	if got := c.MayCSV("CORS_ORIGINS", []string{"*"}); !slices.Equal(got, []string{"*"}) {
		t.Fatalf("blank list = %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New()
	if got := c.MayEnum("CACHE_BACKEND", "redis", "redis", "memory", "none"); got != "redis" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("CACHE_BACKEND", "Memory")
	if got := c.MayEnum("CACHE_BACKEND", "redis", "redis", "memory", "none"); got != "memory" {
		t.Fatalf("case folded = %q", got)
	}
	if got := c.MayEnum("UNSET_ENUM", "", "a", "b"); got != "" {
		t.Fatalf("empty default = %q", got)
	}
	t.Setenv("CACHE_BACKEND", "memcached")
	kit.MustPanic(t, func() { c.MayEnum("CACHE_BACKEND", "redis", "redis", "memory", "none") })
}
