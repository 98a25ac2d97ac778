package domain

import (
	"context"

	"truthlens/internal/core/scoring"
)

// Scorer is the synchronous scoring stage
type Scorer interface {
	Analyze(title, content string) scoring.Signals
}

// SourceSampler finds corroborating sources for a document
type SourceSampler interface {
	Sample(ctx context.Context, docURL, title string) ([]SourceReference, error)
}

// EnrichJob carries what enrichment needs to rebuild the cached result
type EnrichJob struct {
	URL       string
	Title     string
	Result    AnalysisResult
	RequestID string
}

// EnrichPort schedules background enrichment; it never waits for the job to run
type EnrichPort interface {
	Enqueue(ctx context.Context, job EnrichJob) error
}
