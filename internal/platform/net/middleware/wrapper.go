// Package middleware adapts chi and go-chi/cors middleware and holds the in house ones
package middleware

import (
	"net/http"
	"time"

	pstrings "truthlens/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID propagates X-Request-Id or mints one
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// NoCache stamps headers that stop clients caching api responses
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Compress gzips or deflates responses at level
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level).Handler
}

// CORSOptions is the slice of go-chi/cors we configure
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS applies go-chi/cors; the extension calls from arbitrary page origins
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id"}),
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}
