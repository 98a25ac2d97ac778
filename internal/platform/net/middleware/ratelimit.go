package middleware

import (
	stdjson "encoding/json"
	"net"
	stdhttp "net/http"

	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/logger"
	pnet "truthlens/internal/platform/net"
)

// RateLimit answers 429 once allow reports the client out of tokens
// the client key is the remote host, so RealIP must run first behind a proxy
func RateLimit(allow func(key string) bool) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			key := clientKey(r)
			if allow(key) {
				next.ServeHTTP(w, r)
				return
			}
			logger.C(r.Context()).Debug().Str("client", key).Msg("rate limited")
			w.Header().Set("Retry-After", "1")
			writeFailure(w, r, perr.New(perr.ErrorCodeTooManyRequests, "rate limit exceeded"))
		})
	}
}

func clientKey(r *stdhttp.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// writeFailure renders err as the error envelope, echoing the request id
func writeFailure(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	reqID := pnet.RequestID(r.Context())
	if reqID != "" {
		w.Header().Set("X-Request-ID", reqID)
	}
	status, body := pnet.Failure(err, reqID)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = stdjson.NewEncoder(w).Encode(body)
}
