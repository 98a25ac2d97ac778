// Package service implements the background enrichment worker and its enqueue side
package service

import (
	"context"
	"time"

	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/logger"
	"truthlens/internal/platform/worker"

	adom "truthlens/internal/services/analysis/domain"
	dom "truthlens/internal/services/enrich/domain"
)

// Service implements both worker+enqueue ports
type Service interface {
	dom.WorkerPort
	dom.EnqueuePort
}

// Opener hands each worker its own cache handle
type Opener interface {
	Open(ctx context.Context) (cache.Cache, error)
}

// Config controls the worker
type Config struct {
	Workers    int
	QueueDepth int
	// RatePerSec throttles sampling per document host; 0 disables
	RatePerSec float64
	Burst      int
	// TTL is applied to the enriched cache write
	TTL time.Duration
}

// Svc implements the enrichment worker and enqueue service
type Svc struct {
	cfg    Config
	pool   *worker.Pool[dom.Job]
	lim    *worker.Limiter
	smp    adom.SourceSampler
	opener Opener
}

// New constructs the service; a nil opener means enrichment has nowhere to write
func New(opener Opener, smp adom.SourceSampler, cfg Config) *Svc {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = 256
	}
	if cfg.TTL <= 0 {
		cfg.TTL = cache.ArticleTTL
	}
	return &Svc{
		cfg:    cfg,
		pool:   worker.NewPool[dom.Job]("enrich-worker", cfg.Workers, cfg.QueueDepth),
		lim:    worker.NewLimiter(cfg.RatePerSec, cfg.Burst),
		smp:    smp,
		opener: opener,
	}
}

// Enqueue schedules job; a full queue drops it and returns ErrQueueFull
func (s *Svc) Enqueue(ctx context.Context, job dom.Job) error {
	if !s.pool.TrySubmit(job) {
		logger.C(ctx).Warn().
			Str("url", job.URL).
			Str("state", string(adom.StateFailed)).
			Int("queued", s.pool.Len()).
			Msg("enrichment dropped, queue full")
		return dom.ErrQueueFull
	}
	return nil
}

// Pending is the number of queued jobs not yet picked up
func (s *Svc) Pending() int { return s.pool.Len() }

// Run starts the workers and blocks until ctx is done
// jobs already queued are still processed before Run returns; in flight jobs are never cancelled
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("enrich-worker")
	log.Info().Int("workers", s.cfg.Workers).Int("queue", s.cfg.QueueDepth).Msg("enrichment workers starting")

	s.pool.Start(context.WithoutCancel(ctx), s.setup)
	<-ctx.Done()

	s.pool.Close()
	s.pool.Wait()
	log.Info().Msg("enrichment workers stopped")
	return nil
}

// setup opens the per worker cache handle
func (s *Svc) setup(ctx context.Context, id int) (worker.Handler[dom.Job], func(), error) {
	var c cache.Cache = cache.Noop{}
	if s.opener != nil {
		h, err := s.opener.Open(ctx)
		if err != nil {
			// keep draining so queued jobs are logged as failed rather than left behind
			logger.Named("enrich-worker").Error().Err(err).Int("worker", id).Msg("cache open failed")
		} else {
			c = h
		}
	}
	handle := func(ctx context.Context, job dom.Job) {
		s.Process(logger.WithRequest(ctx, job.RequestID), c, job)
	}
	return handle, func() { _ = c.Close() }, nil
}
