package middleware

import (
	"net/http"
	"time"

	"truthlens/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures the access log
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long; 0 never does
	Slow time.Duration
}

// AccessLogZerolog writes one line per request through the request scoped logger
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn().Bool("slow", true)
			}
			evt.Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.EscapedPath()).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}

// RequestLogContext moves the chi request id onto the logger context
func RequestLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.WithRequest(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
