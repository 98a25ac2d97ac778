// Package domain holds the analysis types shared by the request path and the enrichment worker
package domain

import (
	"truthlens/internal/core/sampler"
	"truthlens/internal/core/scoring"
)

// Document is what a client submits for analysis; URL is the cache identity
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url" validate:"required"`
}

// SourceReference is one corroborating article
type SourceReference = sampler.Source

// AnalysisResult is the cached and returned assessment of a document
// Sources is always non nil so it encodes as [] before enrichment
type AnalysisResult struct {
	CredibilityScore float64            `json:"credibilityScore"`
	Sentiment        scoring.Sentiment  `json:"sentiment"`
	BiasTags         []string           `json:"biasTags"`
	Sources          []SourceReference  `json:"sources"`
	TrustLevel       scoring.TrustLevel `json:"trustLevel"`
	Explanation      *string            `json:"explanation,omitempty"`
}

// FromSignals builds an unenriched result
func FromSignals(s scoring.Signals) AnalysisResult {
	return AnalysisResult{
		CredibilityScore: s.Credibility,
		Sentiment:        s.Sentiment,
		BiasTags:         s.BiasTags,
		Sources:          []SourceReference{},
		TrustLevel:       s.Trust,
	}
}

// WithSources returns a copy carrying sources; the receiver is left alone
func (r AnalysisResult) WithSources(src []SourceReference) AnalysisResult {
	if src == nil {
		src = []SourceReference{}
	}
	r.Sources = src
	r.BiasTags = append([]string(nil), r.BiasTags...)
	return r
}

// State is a step in the life of one analysis request
type State string

// Request states; merged and failed are terminal for enrichment
const (
	StateScoring   State = "scoring"
	StateResponded State = "responded"
	StateEnriching State = "enriching"
	StateMerged    State = "merged"
	StateFailed    State = "failed"
)

// VerificationInput is a client's record of having checked an article
type VerificationInput struct {
	URL              string   `json:"url" validate:"required"`
	Title            string   `json:"title"`
	CredibilityScore *float64 `json:"credibilityScore"`
	TrustLevel       string   `json:"trustLevel"`
	Timestamp        *int64   `json:"timestamp"`
}

// Verification is a saved VerificationInput
type Verification struct {
	ID               string   `json:"id"`
	Timestamp        int64    `json:"timestamp"`
	URL              string   `json:"url"`
	Title            string   `json:"title"`
	CredibilityScore *float64 `json:"credibilityScore"`
	TrustLevel       string   `json:"trustLevel"`
}
