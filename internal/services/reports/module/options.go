package module

import (
	"strings"

	"truthlens/internal/platform/config"
)

// Report store backends
const (
	BackendMemory = "memory"
	BackendPG     = "pg"
)

// Options controls the reports module
type Options struct {
	Backend string
}

// FromConfig reads REPORTS_BACKEND
func FromConfig(cfg config.Conf) Options {
	b := cfg.MayEnum("REPORTS_BACKEND", BackendMemory, BackendMemory, BackendPG)
	return Options{Backend: strings.ToLower(b)}
}
