// Package module wires user reports into the API using modkit
package module

import (
	"context"
	"time"

	modkit "truthlens/internal/modkit"
	"truthlens/internal/modkit/httpkit"
	"truthlens/internal/modkit/repokit"
	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/logger"

	rdom "truthlens/internal/services/reports/domain"
	rhttp "truthlens/internal/services/reports/http"
	rrepo "truthlens/internal/services/reports/repo"
	rsvc "truthlens/internal/services/reports/service"
)

// Module implements the reports API module
type Module struct {
	built   modkit.Built
	backend string
	cache   cache.Cache
	svc     rdom.ServicePort
}

// New constructs the reports module; pg is used only when configured and a pool is present
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports")}, opts...)...)
	cfg := FromConfig(deps.Cfg)
	log := logger.Named("reports")

	store, backend := pickStore(deps, cfg, log)

	var c cache.Cache = cache.Noop{}
	if deps.Cache != nil {
		h, err := deps.Cache.Open(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("cache unavailable, report lists disabled")
		} else {
			c = h
		}
	}

	return &Module{
		built:   b,
		backend: backend,
		cache:   c,
		svc:     rsvc.New(store, c, time.Now),
	}
}

func pickStore(deps modkit.Deps, cfg Options, log *logger.Logger) (rdom.StorePort, string) {
	if cfg.Backend != BackendPG {
		return rrepo.NewMemory(), BackendMemory
	}
	if deps.PG == nil {
		log.Warn().Msg("REPORTS_BACKEND=pg without a postgres pool, using memory")
		return rrepo.NewMemory(), BackendMemory
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rrepo.EnsureSchema(ctx, deps.PG); err != nil {
		log.Error().Err(err).Msg("reports schema not applied")
	}
	return repokit.MustBind(rrepo.NewPG(), deps.PG), BackendPG
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { rhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix, empty when mounted at the parent root
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports exposes the reports service
func (m *Module) Ports() any { return m.svc }

// Backend names the report store in use
func (m *Module) Backend() string { return m.backend }

// Close releases the cache handle
func (m *Module) Close() error { return m.cache.Close() }
