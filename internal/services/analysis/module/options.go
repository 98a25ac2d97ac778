package module

import (
	"time"

	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/config"
)

// Options controls the analysis request path
type Options struct {
	TTL time.Duration
}

// FromConfig reads ANALYSIS_TTL
func FromConfig(cfg config.Conf) Options {
	return Options{TTL: cfg.MayDuration("ANALYSIS_TTL", cache.ArticleTTL)}
}
