package module

import (
	"time"

	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/config"
)

// Options controls the enrichment worker
type Options struct {
	Workers      int
	QueueDepth   int
	RatePerSec   float64
	Burst        int
	SamplerDelay time.Duration
	TTL          time.Duration
}

// FromConfig reads with ENRICH_ prefix; SAMPLER_DELAY and ANALYSIS_TTL are unprefixed
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ENRICH_")
	return Options{
		Workers:      c.MayInt("WORKERS", 4),
		QueueDepth:   c.MayInt("QUEUE", 256),
		RatePerSec:   c.MayFloat64("RPS", 0),
		Burst:        c.MayInt("BURST", 1),
		SamplerDelay: cfg.MayDuration("SAMPLER_DELAY", 300*time.Millisecond),
		TTL:          cfg.MayDuration("ANALYSIS_TTL", cache.ArticleTTL),
	}
}
