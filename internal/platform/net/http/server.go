package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"truthlens/internal/platform/config"
	"truthlens/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads API_PORT from cfg, default ":8000"
// opts see the mux before any route is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":8000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       90 * time.Second,
		},
	}
}

// Router is the mountable view of the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run blocks until the listener fails or Shutdown is called
func (s *Server) Run(context.Context) error {
	logger.Named("http").Info().Str("addr", s.addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
