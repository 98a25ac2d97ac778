package sampler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"truthlens/internal/core/chance"
)

func TestSample_NeverIncludesOwnPublisher(t *testing.T) {
	s := New(Config{Rand: chance.Seeded(5)})
	urls := []string{
		"https://www.reuters.com/world/a",
		"https://bbc.com/news/1",
		"https://edition.cnn.com/x",
		"https://example.com/sample-article",
		"not a url at all",
	}
	for i := 0; i < 500; i++ {
		u := urls[i%len(urls)]
		host := HostOf(u)
		got, err := s.Sample(context.Background(), u, "Sample News Article for Testing")
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		pool := s.Pool(host)
		if len(got) < min(2, len(pool)) || len(got) > min(4, len(pool)) {
			t.Fatalf("got %d sources for pool of %d", len(got), len(pool))
		}
		seen := map[string]bool{}
		for _, src := range got {
			domain := strings.TrimPrefix(src.URL, "https://")
			domain = domain[:strings.Index(domain, "/")]
			if host != "" && strings.Contains(host, domain) {
				t.Fatalf("source %s from document host %s", src.URL, host)
			}
			if seen[domain] {
				t.Fatalf("publisher %s chosen twice", domain)
			}
			seen[domain] = true
			if src.MatchScore < MinMatchScore || src.MatchScore > MaxMatchScore {
				t.Fatalf("match score %v out of range", src.MatchScore)
			}
			if src.Publisher == nil || *src.Publisher == "" {
				t.Fatalf("expected publisher name")
			}
		}
	}
}

func TestPool_SubstringExclusion(t *testing.T) {
	s := New(Config{})
	if n := len(s.Pool("www.reuters.com")); n != len(DefaultCatalog)-1 {
		t.Fatalf("expected reuters excluded, pool=%d", n)
	}
	if n := len(s.Pool("abcnews.go.com")); n != len(DefaultCatalog)-1 {
		t.Fatalf("expected abc excluded, pool=%d", n)
	}
	if n := len(s.Pool("")); n != len(DefaultCatalog) {
		t.Fatalf("empty host should exclude nothing, pool=%d", n)
	}
}

func TestSample_EmptyPool(t *testing.T) {
	s := New(Config{Catalog: []Publisher{{Name: "Only", Domain: "only.com"}}})
	got, err := s.Sample(context.Background(), "https://news.only.com/a", "t")
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestSample_URLShape(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := New(Config{Rand: chance.Seeded(9), Now: func() time.Time { return now }})
	got, _ := s.Sample(context.Background(), "https://example.com/a", "Some title")
	want := "/article/1700000000-"
	for _, src := range got {
		if !strings.Contains(src.URL, want) {
			t.Fatalf("url %q missing %q", src.URL, want)
		}
	}
	if titleHash("Some title") != titleHash("Some title") {
		t.Fatalf("title hash must be stable")
	}
	if titleHash("Some title") >= 10000 {
		t.Fatalf("title hash out of range")
	}
}

func TestTitle_FallbackAndSynthesis(t *testing.T) {
	s := New(Config{Rand: chance.Seeded(1)})
	short := "Big news today"
	if got := s.title(short, titleWords(short)); got != "Report related to: "+short {
		t.Fatalf("fallback title = %q", got)
	}
	// five words but only three longer than 3 characters
	few := "The cat sat upon mats near"
	if got := s.title(few, titleWords(few)); got != "Report related to: "+few {
		t.Fatalf("fallback title = %q", got)
	}

	long := "Sample News Article for Testing"
	words := titleWords(long)
	if len(words) != 4 {
		t.Fatalf("expected 4 qualifying words, got %v", words)
	}
	for i := 0; i < 200; i++ {
		got := s.title(long, words)
		if strings.HasPrefix(got, "Report related to: ") {
			t.Fatalf("unexpected fallback for %q", long)
		}
		hit := 0
		for _, w := range words {
			if strings.Contains(got, w) {
				hit++
			}
		}
		if hit < 2 {
			t.Fatalf("title %q uses fewer than 2 source words", got)
		}
	}
}

func TestSample_HonorsContextDuringDelay(t *testing.T) {
	s := New(Config{Delay: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Sample(ctx, "https://example.com", "t")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}
