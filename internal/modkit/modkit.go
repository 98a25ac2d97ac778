// Package modkit is the module contract and the dependencies every module receives
package modkit

import (
	"truthlens/internal/modkit/repokit"
	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/config"
	"truthlens/internal/platform/logger"
	phttp "truthlens/internal/platform/net/http"
)

// Module mounts routes and exposes ports for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Deps holds what modules are built from; every field may be zero in tests
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// Cache opens handles onto the shared result cache; nil means no cache
	Cache *cache.Factory
}
