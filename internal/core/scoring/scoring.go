// Package scoring computes the placeholder credibility, sentiment and bias signals for a document
// Every function here is pure over its text input except the jitter applied to credibility
package scoring

import (
	"truthlens/internal/core/chance"
	"truthlens/internal/platform/logger"
)

// Sentiment is the coarse tone label of a document
type Sentiment string

// Sentiment labels in hash index order
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// TrustLevel buckets a credibility score
type TrustLevel string

// Trust buckets
const (
	TrustHigh   TrustLevel = "high"
	TrustMedium TrustLevel = "medium"
	TrustLow    TrustLevel = "low"
)

// DefaultBiasCatalog is the ordered tag list bias indexes point into
var DefaultBiasCatalog = []string{
	"political", "left-leaning", "right-leaning", "center",
	"opinion", "factual", "emotional", "sensationalist",
	"corporate", "independent", "scientific", "religious",
	"economic", "historical", "cultural",
}

// Config holds the engine's fixed inputs
type Config struct {
	// BiasCatalog is indexed modulo its length; defaults to DefaultBiasCatalog
	BiasCatalog []string
	// PrefixRunes is how much of the content feeds the hashes; defaults to 100
	PrefixRunes int
	// Jitter is the half-width of the uniform noise added to credibility; defaults to 0.1
	Jitter float64
	// Rand supplies the jitter; defaults to chance.Global
	Rand chance.Rand
}

// Engine scores documents
type Engine struct {
	catalog []string
	prefix  int
	jitter  float64
	rnd     chance.Rand
}

// New builds an Engine, filling zero fields with defaults
func New(cfg Config) *Engine {
	e := &Engine{
		catalog: cfg.BiasCatalog,
		prefix:  cfg.PrefixRunes,
		jitter:  cfg.Jitter,
		rnd:     cfg.Rand,
	}
	if len(e.catalog) == 0 {
		e.catalog = DefaultBiasCatalog
	}
	if e.prefix <= 0 {
		e.prefix = 100
	}
	if e.jitter == 0 {
		e.jitter = 0.1
	}
	if e.rnd == nil {
		e.rnd = chance.Global()
	}
	return e
}

// Signals bundles the three outputs of one scoring pass
type Signals struct {
	Credibility float64
	Sentiment   Sentiment
	BiasTags    []string
	Trust       TrustLevel
}

// Analyze runs all three scorers over a document
func (e *Engine) Analyze(title, content string) Signals {
	score := e.Credibility(title, content)
	return Signals{
		Credibility: score,
		Sentiment:   e.Sentiment(content),
		BiasTags:    e.BiasTags(content),
		Trust:       TrustFor(score),
	}
}

// BaseCredibility is the deterministic part of the score before jitter
func (e *Engine) BaseCredibility(title, content string) float64 {
	h := codeSum(title, -1) + codeSum(content, e.prefix)
	return float64(h%100) / 100.0
}

// Credibility returns the base score plus uniform jitter, clamped to [0,1]
func (e *Engine) Credibility(title, content string) float64 {
	noise := chance.Uniform(e.rnd, -e.jitter, e.jitter)
	score := clamp01(e.BaseCredibility(title, content) + noise)
	logger.Named("scoring").Debug().Float64("score", score).Msg("credibility score")
	return score
}

// Sentiment maps the content hash onto positive, negative, neutral
func (e *Engine) Sentiment(content string) Sentiment {
	labels := [...]Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}
	s := labels[codeSum(content, e.prefix)%3]
	logger.Named("scoring").Debug().Str("sentiment", string(s)).Msg("sentiment analysis")
	return s
}

// BiasTags picks 1..3 catalog entries at (h + i*7) mod len(catalog)
// duplicates are possible and kept
func (e *Engine) BiasTags(content string) []string {
	h := codeSum(content, e.prefix)
	n := h%3 + 1
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tags = append(tags, e.catalog[(h+i*7)%len(e.catalog)])
	}
	logger.Named("scoring").Debug().Strs("tags", tags).Msg("bias tags")
	return tags
}

// TrustFor buckets a score: >=0.7 high, >=0.4 medium, else low
func TrustFor(score float64) TrustLevel {
	switch {
	case score >= 0.7:
		return TrustHigh
	case score >= 0.4:
		return TrustMedium
	default:
		return TrustLow
	}
}

// codeSum adds the code points of the first limit runes of s, all of them when limit < 0
func codeSum(s string, limit int) int {
	sum, n := 0, 0
	for _, r := range s {
		if limit >= 0 && n >= limit {
			break
		}
		sum += int(r)
		n++
	}
	return sum
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
