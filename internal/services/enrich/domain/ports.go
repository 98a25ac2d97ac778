// Package domain defines the enrichment worker ports
package domain

import (
	"context"

	perr "truthlens/internal/platform/errors"
	adom "truthlens/internal/services/analysis/domain"
)

// Job is one scheduled enrichment
type Job = adom.EnrichJob

// EnqueuePort accepts jobs without blocking
type EnqueuePort = adom.EnrichPort

// WorkerPort (run loop) is separate
type WorkerPort interface {
	Run(ctx context.Context) error
}

// ErrQueueFull is returned when a job is dropped for lack of queue space
var ErrQueueFull = perr.New(perr.ErrorCodeTooManyRequests, "enrichment queue full")
