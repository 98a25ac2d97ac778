// Package worker runs queued jobs on a fixed set of goroutines
package worker

import (
	"context"
	"sync"

	"truthlens/internal/platform/logger"
)

// Handler processes one job
type Handler[J any] func(ctx context.Context, job J)

// Setup builds the handler for worker id; release runs when that worker exits
// per worker setup is where a worker opens handles it must not share
type Setup[J any] func(ctx context.Context, id int) (h Handler[J], release func(), err error)

// Pool is a bounded queue drained by a fixed number of workers
// submitting never blocks: a full queue rejects the job
type Pool[J any] struct {
	name    string
	workers int
	queue   chan J

	mu     sync.RWMutex
	closed bool

	wg        sync.WaitGroup
	startOnce sync.Once
}

// NewPool creates a pool with workers goroutines and a queue of depth jobs
func NewPool[J any](name string, workers, depth int) *Pool[J] {
	if workers <= 0 {
		workers = 1
	}
	if depth < 0 {
		depth = 0
	}
	return &Pool[J]{
		name:    name,
		workers: workers,
		queue:   make(chan J, depth),
	}
}

// Start launches the workers once; later calls are ignored
// workers stop when ctx is done or after the queue is closed and drained
func (p *Pool[J]) Start(ctx context.Context, setup Setup[J]) {
	p.startOnce.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker(ctx, i, setup)
		}
	})
}

func (p *Pool[J]) worker(ctx context.Context, id int, setup Setup[J]) {
	defer p.wg.Done()
	log := logger.Named(p.name)

	h, release, err := setup(ctx, id)
	if err != nil {
		log.Error().Err(err).Int("worker", id).Msg("worker setup failed")
		return
	}
	if release != nil {
		defer release()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			h(ctx, job)
		}
	}
}

// TrySubmit queues job without blocking; false when the queue is full or closed
func (p *Pool[J]) TrySubmit(job J) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- job:
		return true
	default:
		return false
	}
}

// Len is the number of queued jobs not yet picked up
func (p *Pool[J]) Len() int { return len(p.queue) }

// Workers is the configured worker count
func (p *Pool[J]) Workers() int { return p.workers }

// Close stops accepting jobs; queued jobs are still drained
func (p *Pool[J]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
}

// Wait blocks until every started worker has exited
func (p *Pool[J]) Wait() { p.wg.Wait() }
