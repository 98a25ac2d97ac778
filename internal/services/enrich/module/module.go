// Package module wires the enrichment worker and exposes its ports
package module

import (
	"truthlens/internal/core/sampler"
	"truthlens/internal/modkit"
	"truthlens/internal/modkit/httpkit"
	"truthlens/internal/services/enrich/service"
)

// Module defines the enrich worker module
type Module struct {
	ports Ports
	svc   *service.Svc
}

// New constructs the enrich worker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Workers != 0 {
		opts.Workers = overrides.Workers
	}
	if overrides.QueueDepth != 0 {
		opts.QueueDepth = overrides.QueueDepth
	}
	if overrides.RatePerSec != 0 {
		opts.RatePerSec = overrides.RatePerSec
	}
	if overrides.Burst != 0 {
		opts.Burst = overrides.Burst
	}
	if overrides.SamplerDelay != 0 {
		opts.SamplerDelay = overrides.SamplerDelay
	}
	if overrides.TTL != 0 {
		opts.TTL = overrides.TTL
	}

	var opener service.Opener
	if deps.Cache != nil {
		opener = deps.Cache
	}

	svc := service.New(opener, sampler.New(sampler.Config{Delay: opts.SamplerDelay}), service.Config{
		Workers:    opts.Workers,
		QueueDepth: opts.QueueDepth,
		RatePerSec: opts.RatePerSec,
		Burst:      opts.Burst,
		TTL:        opts.TTL,
	})

	return &Module{
		svc: svc,
		ports: Ports{
			Worker:   svc, // svc implements WorkerPort
			Enqueuer: svc, // svc also implements EnqueuePort
		},
	}
}

// Ports returns the module ports (Worker, Enqueuer)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "enrich" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// Pending is the number of queued enrichment jobs
func (m *Module) Pending() int { return m.svc.Pending() }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
