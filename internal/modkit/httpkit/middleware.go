package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"truthlens/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// origins feeds CORS; none means any origin
// paths are not rewritten so document urls embedded in them survive intact
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogContext,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(30 * time.Second),
	}
}
