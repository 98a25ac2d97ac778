// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	"truthlens/internal/core/version"
	modkit "truthlens/internal/modkit"
	"truthlens/internal/modkit/httpkit"
	str "truthlens/internal/platform/strings"

	metahttp "truthlens/internal/services/meta/http"
)

// Pinger is a readiness probe
type Pinger interface{ Ping(context.Context) error }

// Ports are the probes injected by the api composer; all optional
type Ports struct {
	PG             Pinger
	Redis          Pinger
	CacheAvailable func() bool
	QueueDepth     func() int
}

// Module implements the modkit.Module interface
type Module struct {
	built       modkit.Built
	handlerDeps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	var probes Ports
	if p, ok := b.Ports.(Ports); ok {
		probes = p
	}

	m := &Module{
		built: b,
		handlerDeps: metahttp.Deps{
			ServiceName:    version.ServiceName,
			StartedAt:      time.Now(),
			CacheAvailable: probes.CacheAvailable,
			QueueDepth:     probes.QueueDepth,
			DocsURL:        "/api/docs/",
		},
	}
	// keep untyped nils so the handler reports them as skipped
	if probes.PG != nil {
		m.handlerDeps.PG = probes.PG
	}
	if probes.Redis != nil {
		m.handlerDeps.Redis = probes.Redis
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	b := m.built
	b.Prefix = str.MustPrefix(b.Prefix)
	b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.handlerDeps) })
}

// MountRoot mounts /, /health and /healthz outside the api prefix
func (m *Module) MountRoot(r httpkit.Router) {
	metahttp.RegisterRoot(r, m.handlerDeps)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
