package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/logger"
	pnet "truthlens/internal/platform/net"
)

// RecoverJSON turns a panic into the 500 error envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			logger.C(r.Context()).Error().
				Str("request_id", pnet.RequestID(r.Context())).
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")
			writeFailure(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
