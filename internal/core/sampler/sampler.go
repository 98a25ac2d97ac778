// Package sampler simulates cross verification of a document against trusted publishers
package sampler

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"truthlens/internal/core/chance"
	"truthlens/internal/platform/logger"
)

// Publisher is one entry of the trusted catalog
type Publisher struct {
	Name        string
	Domain      string
	Reliability float64
}

// Source is a corroborating reference produced by Sample
type Source struct {
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	Publisher  *string `json:"publisher,omitempty"`
	MatchScore float64 `json:"matchScore"`
}

// DefaultCatalog is the fixed trusted publisher list
var DefaultCatalog = []Publisher{
	{Name: "Reuters", Domain: "reuters.com", Reliability: 0.95},
	{Name: "Associated Press", Domain: "apnews.com", Reliability: 0.93},
	{Name: "BBC", Domain: "bbc.com", Reliability: 0.92},
	{Name: "NPR", Domain: "npr.org", Reliability: 0.9},
	{Name: "The New York Times", Domain: "nytimes.com", Reliability: 0.89},
	{Name: "The Washington Post", Domain: "washingtonpost.com", Reliability: 0.88},
	{Name: "The Wall Street Journal", Domain: "wsj.com", Reliability: 0.87},
	{Name: "The Guardian", Domain: "theguardian.com", Reliability: 0.86},
	{Name: "CNN", Domain: "cnn.com", Reliability: 0.85},
	{Name: "ABC News", Domain: "abcnews.go.com", Reliability: 0.84},
}

var (
	titlePrefixes = []string{"Report: ", "Analysis: ", "", ""}
	titleSuffixes = []string{
		" - What You Need to Know",
		": Experts Weigh In",
		" and Its Implications",
		": The Facts",
		"",
	}
)

// Match score bounds
const (
	MinMatchScore = 0.65
	MaxMatchScore = 0.95
)

// Config holds the sampler knobs
type Config struct {
	Catalog []Publisher
	// Delay simulates the upstream lookup; zero means no wait
	Delay time.Duration
	Rand  chance.Rand
	// Now stamps synthetic article urls; defaults to time.Now
	Now func() time.Time
}

// Sampler produces corroborating sources; safe for concurrent use when Rand is
type Sampler struct {
	catalog []Publisher
	delay   time.Duration
	rnd     chance.Rand
	now     func() time.Time
}

// New builds a Sampler with defaults for zero fields
func New(cfg Config) *Sampler {
	s := &Sampler{catalog: cfg.Catalog, delay: cfg.Delay, rnd: cfg.Rand, now: cfg.Now}
	if len(s.catalog) == 0 {
		s.catalog = DefaultCatalog
	}
	if s.rnd == nil {
		s.rnd = chance.Global()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Sample waits out the simulated latency then returns 2..4 sources from publishers
// whose domain does not appear inside the document host
func (s *Sampler) Sample(ctx context.Context, docURL, title string) ([]Source, error) {
	log := logger.C(ctx).With().Str("component", "sampler").Str("url", docURL).Logger()
	log.Info().Msg("cross verifying article")

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	pool := s.Pool(HostOf(docURL))
	k := chance.Between(s.rnd, 2, 4)
	words := titleWords(title)

	out := make([]Source, 0, min(k, len(pool)))
	for _, i := range chance.Sample(s.rnd, len(pool), k) {
		p := pool[i]
		name := p.Name
		out = append(out, Source{
			URL:        fmt.Sprintf("https://%s/article/%d-%d", p.Domain, s.now().Unix(), titleHash(title)),
			Title:      s.title(title, words),
			Publisher:  &name,
			MatchScore: chance.Uniform(s.rnd, MinMatchScore, MaxMatchScore),
		})
	}

	log.Info().Int("sources", len(out)).Msg("found related sources")
	return out, nil
}

// Pool returns the catalog minus publishers whose domain is a substring of host
func (s *Sampler) Pool(host string) []Publisher {
	pool := make([]Publisher, 0, len(s.catalog))
	for _, p := range s.catalog {
		if host != "" && strings.Contains(host, p.Domain) {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}

// title synthesizes a related headline from 2..4 qualifying words of the original
func (s *Sampler) title(orig string, words []string) string {
	if len(words) < 4 {
		return "Report related to: " + orig
	}
	n := min(len(words), chance.Between(s.rnd, 2, 4))
	picked := make([]string, 0, n)
	for _, i := range chance.Sample(s.rnd, len(words), n) {
		picked = append(picked, words[i])
	}
	return chance.Pick(s.rnd, titlePrefixes) + strings.Join(picked, " ") + chance.Pick(s.rnd, titleSuffixes)
}

// titleWords keeps words longer than three characters
func titleWords(title string) []string {
	var out []string
	for _, w := range strings.Fields(title) {
		if utf8.RuneCountInString(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// titleHash is a stable 0..9999 bucket of the title
func titleHash(title string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return h.Sum32() % 10000
}

// HostOf returns the host of raw, or "" when it does not parse
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
