// Package httpkit is the routing surface modules mount against
// modules import this instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "truthlens/internal/platform/net/http"
	"truthlens/internal/platform/net/http/bind"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Response is what handlers return when they need more than a 200 envelope
	Response = phttp.Response

	// JSONOptions controls request body parsing
	JSONOptions = bind.JSONOptions
)

// Lenient accepts unknown fields, for clients that send more than the route reads
var Lenient = JSONOptions{MaxBytes: 1 << 20}

// Bare returns a 200 response written without the envelope
func Bare(v any) Response { return phttp.Bare(v) }

// Get mounts a body-less handler; plain values are wrapped in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) phttp.Response {
		out, err := h(req)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	}))
}

// PostJSONWith mounts a handler that binds and validates a JSON body of T
func PostJSONWith[T any](r Router, path string, opts JSONOptions, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandlerWith(h, opts))
}

// MountUnder mounts a subrouter at prefix with its own middleware
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
