// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"truthlens/internal/core/version"
	"truthlens/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	Redis       any
	// CacheAvailable reports whether the request path has a cache
	CacheAvailable func() bool
	// QueueDepth reports queued enrichment jobs; nil reports zero
	QueueDepth func() int
	DocsURL    string
}

type handlers struct {
	deps Deps
}

// Register mounts the /api/meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// RegisterRoot mounts the unprefixed probes and the welcome payload
func RegisterRoot(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.welcome)
	httpkit.Get(r, "/health", h.services)
	httpkit.Get(r, "/healthz", h.healthz)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"truthlens-api"`
	Started string `json:"started"  example:"2026-10-03T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:6379: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"truthlens-api"`
	Started string `json:"started" example:"2026-10-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	Queue   int    `json:"enrich_queue" example:"0"`
}

// ServicesHealth is the per component view the browser extension polls
type ServicesHealth struct {
	Status   string          `json:"status" example:"healthy"` // healthy degraded
	Services map[string]bool `json:"services"`
}

// StatusResponse is the bare liveness payload
type StatusResponse struct {
	Status string `json:"status" example:"healthy"`
}

// WelcomeResponse is served at the root
type WelcomeResponse struct {
	Message string `json:"message"  example:"Welcome to TruthLens API"`
	Version string `json:"version"  example:"1.0.0"`
	Status  string `json:"status"   example:"operational"`
	DocsURL string `json:"docs_url" example:"/api/docs/"`
}

// swagger:route GET /api/meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /api/meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /api/meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /api/meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("redis", h.deps.Redis)}

	overall := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			overall = "fail"
		case "unknown":
			if overall == "ok" {
				overall = "degraded"
			}
		}
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /api/meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /api/meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /api/meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /api/meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}
	if h.deps.QueueDepth != nil {
		out.Queue = h.deps.QueueDepth()
	}
	return out, nil
}

func (h *handlers) services(_ *http.Request) (any, error) {
	cacheOK := h.deps.CacheAvailable != nil && h.deps.CacheAvailable()
	out := ServicesHealth{
		Status:   "healthy",
		Services: map[string]bool{"api": true, "models": true, "redis": cacheOK},
	}
	if !cacheOK {
		out.Status = "degraded"
	}
	return httpkit.Bare(out), nil
}

func (h *handlers) healthz(_ *http.Request) (any, error) {
	return httpkit.Bare(StatusResponse{Status: "healthy"}), nil
}

func (h *handlers) welcome(_ *http.Request) (any, error) {
	return httpkit.Bare(WelcomeResponse{
		Message: "Welcome to TruthLens API",
		Version: version.Version(),
		Status:  "operational",
		DocsURL: h.deps.DocsURL,
	}), nil
}
