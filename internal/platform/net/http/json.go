package http

import (
	"net/http"

	"truthlens/internal/platform/net/http/bind"
)

// JSONHandlerWith binds and validates a T from the body, then calls fn
// a returned Response is written as is, any other value is enveloped as a 200
// opts default to bind.Strict
func JSONHandlerWith[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return asResponse(out)
	})
}

func asResponse(out any) Response {
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
