// Package http writes JSON responses and adapts return-style handlers to net/http
package http

import (
	"encoding/json"
	stdhttp "net/http"

	lumnet "truthlens/internal/platform/net"
)

// Envelope is the wire body for enveloped responses and all errors
type Envelope = lumnet.Envelope

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers hand back
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
	// Bare writes Body as is, without the envelope; errors are still enveloped
	Bare bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := lumnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := lumnet.Failure(err, reqID)
		JSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	switch {
	case status == stdhttp.StatusNoContent:
		w.WriteHeader(status)
	case resp.Bare:
		JSON(w, status, resp.Body)
	default:
		JSON(w, status, lumnet.Success(status, resp.Body, reqID))
	}
}

// OK returns an enveloped 200
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Raw returns a response whose body is written without the envelope
func Raw(status int, v any) Response { return Response{Status: status, Body: v, Bare: true} }

// Bare is a 200 Raw response
func Bare(v any) Response { return Raw(stdhttp.StatusOK, v) }

// Error returns a response that maps err to its status and the error envelope
func Error(err error) Response { return Response{Body: err} }
