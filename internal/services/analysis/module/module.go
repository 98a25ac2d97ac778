// Package module wires analysis into the API using modkit
package module

import (
	"context"

	"truthlens/internal/core/scoring"
	modkit "truthlens/internal/modkit"
	"truthlens/internal/modkit/httpkit"
	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/logger"

	ahttp "truthlens/internal/services/analysis/http"
	asvc "truthlens/internal/services/analysis/service"
	edom "truthlens/internal/services/enrich/domain"
)

// Ports declares the injected worker port; a nil Enqueuer turns enrichment off
type Ports struct {
	Enqueuer edom.EnqueuePort
}

// Module implements the analysis API module
type Module struct {
	built modkit.Built
	cache cache.Cache
	svc   asvc.Service
}

// New constructs the analysis module; routes mount at the parent root unless WithPrefix is given
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analysis")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	c := openCache(deps.Cache)
	cfg := FromConfig(deps.Cfg)

	return &Module{
		built: b,
		cache: c,
		svc:   asvc.New(scoring.New(scoring.Config{}), c, injected.Enqueuer, asvc.Config{TTL: cfg.TTL}),
	}
}

// openCache opens the request path handle; a failure degrades to no cache
func openCache(f *cache.Factory) cache.Cache {
	if f == nil {
		return cache.Noop{}
	}
	c, err := f.Open(context.Background())
	if err != nil {
		logger.Named("analysis").Error().Err(err).Str("backend", f.Backend()).Msg("cache unavailable, continuing without it")
		return cache.Noop{}
	}
	return c
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { ahttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix, empty when mounted at the parent root
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports exposes the service for cross module lookups
func (m *Module) Ports() any { return m.svc }

// Service returns the analysis service
func (m *Module) Service() asvc.Service { return m.svc }

// CacheAvailable reports whether the request path has a cache
func (m *Module) CacheAvailable() bool { return m.cache.Available() }

// Close releases the request path cache handle
func (m *Module) Close() error { return m.cache.Close() }
