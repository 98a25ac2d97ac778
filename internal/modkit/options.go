package modkit

import (
	"net/http"

	phttp "truthlens/internal/platform/net/http"
)

// Option mutates build configuration for a module
type Option func(*Built)

// Built is what a module reads back after its options ran
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// WithName sets the module name used in logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts a module under a path prefix; empty shares the parent router
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports owned by another module; the receiver asserts the concrete type
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// Mount registers routes under b.Prefix with b.Mw applied; an empty prefix
// groups them on r so the middleware stays scoped to the module
func (b Built) Mount(r phttp.Router, register func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		register(rr)
	}
	if b.Prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(b.Prefix, mount)
}
