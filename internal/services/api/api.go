// Package api composes the modules onto the HTTP router
package api

import (
	"io"

	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/config"
	"truthlens/internal/platform/logger"
	phttp "truthlens/internal/platform/net/http"
	"truthlens/internal/platform/net/middleware"
	"truthlens/internal/platform/store"
	"truthlens/internal/platform/worker"

	"truthlens/internal/modkit"
	"truthlens/internal/modkit/httpkit"
	"truthlens/internal/modkit/module"
	"truthlens/internal/modkit/swaggerkit"

	analysismod "truthlens/internal/services/analysis/module"
	edom "truthlens/internal/services/enrich/domain"
	enrichmod "truthlens/internal/services/enrich/module"
	metamod "truthlens/internal/services/meta/module"
	reportsmod "truthlens/internal/services/reports/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Cache          *cache.Factory
	Logger         *logger.Logger
	CORSOrigins    []string
	EnableSwagger  bool
	EnableProfiler bool

	// AnalyzeRPS caps analysis requests per client; zero or less disables the limit
	AnalyzeRPS   float64
	AnalyzeBurst int
}

// Mounted is what the caller runs and closes alongside the http server
type Mounted struct {
	// Worker runs background enrichment until its context is done
	Worker edom.WorkerPort
	// Closers release module owned cache handles
	Closers []io.Closer
}

// Mount mounts the API onto r and returns the enrichment worker for the caller to run
func Mount(r phttp.Router, opt Options) Mounted {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Cache: opt.Cache,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil && opt.Store.PG != nil {
		deps.PG = opt.Store.PG
	}

	// worker first; its Enqueuer feeds the analysis module
	enrich := enrichmod.New(deps, enrichmod.Options{})
	wp := module.MustPortsOf[enrichmod.Ports](enrich)

	analysisOpts := []modkit.Option{modkit.WithPorts(analysismod.Ports{Enqueuer: wp.Enqueuer})}
	if lim := worker.NewLimiter(opt.AnalyzeRPS, opt.AnalyzeBurst); lim.Enabled() {
		analysisOpts = append(analysisOpts, modkit.WithMiddlewares(middleware.RateLimit(lim.Allow)))
	}
	analysis := analysismod.New(deps, analysisOpts...)
	reports := reportsmod.New(deps)

	probes := metamod.Ports{
		CacheAvailable: analysis.(*analysismod.Module).CacheAvailable,
		QueueDepth:     enrich.Pending,
	}
	if opt.Store != nil {
		probes.PG = opt.Store.PGPinger()
		probes.Redis = opt.Store.RedisPinger()
	}
	meta := metamod.New(deps, modkit.WithPorts(probes))

	mods := []modkit.Module{meta, analysis, reports, enrich}

	stack := httpkit.CommonStack(opt.CORSOrigins...)

	// unprefixed probes and welcome payload
	r.Group(func(root phttp.Router) {
		root.Use(stack...)
		meta.(*metamod.Module).MountRoot(root)
	})

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountUnder(r, "/api", stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	return Mounted{
		Worker:  wp.Worker,
		Closers: []io.Closer{analysis.(io.Closer), reports.(io.Closer)},
	}
}
