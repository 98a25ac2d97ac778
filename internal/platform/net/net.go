// Package net holds the transport neutral response envelope and request scoped ids
package net

import (
	"context"
	"net/http"

	perr "truthlens/internal/platform/errors"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope is the response body for enveloped success and for every error
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Success wraps data in a status envelope
func Success(status int, data any, reqID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure maps err to its status and error envelope
func Failure(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}

// WithRequestID stores reqID where chi's RequestID middleware would
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
