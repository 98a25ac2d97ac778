// Package service implements the analysis request path: cache lookup, scoring,
// the first cache write and handing the result to enrichment
package service

import (
	"context"
	"encoding/json"
	"time"

	"truthlens/internal/platform/cache"
	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/logger"
	lumnet "truthlens/internal/platform/net"

	dom "truthlens/internal/services/analysis/domain"

	"github.com/google/uuid"
)

// Service is the analysis surface the http layer calls
type Service interface {
	Analyze(ctx context.Context, doc dom.Document) (dom.AnalysisResult, error)
	Lookup(ctx context.Context, url string) (dom.AnalysisResult, error)
	SaveVerification(ctx context.Context, in dom.VerificationInput) (dom.Verification, error)
	CacheAvailable() bool
}

// Config controls the request path
type Config struct {
	// TTL applies to the unenriched write; defaults to cache.ArticleTTL
	TTL time.Duration
	// Now stamps verifications; defaults to time.Now
	Now func() time.Time
}

// Svc implements Service
type Svc struct {
	scorer dom.Scorer
	cache  cache.Cache
	enrich dom.EnrichPort
	ttl    time.Duration
	now    func() time.Time
}

// New constructs the service; a nil cache becomes cache.Noop and a nil enricher skips enrichment
func New(scorer dom.Scorer, c cache.Cache, enrich dom.EnrichPort, cfg Config) *Svc {
	if c == nil {
		c = cache.Noop{}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = cache.ArticleTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Svc{scorer: scorer, cache: c, enrich: enrich, ttl: cfg.TTL, now: cfg.Now}
}

// CacheAvailable reports whether a cache backend is configured
func (s *Svc) CacheAvailable() bool { return s.cache.Available() }

// Analyze answers from the cache when it can, otherwise scores the document,
// writes the sources-less result and schedules enrichment without waiting for it
func (s *Svc) Analyze(ctx context.Context, doc dom.Document) (dom.AnalysisResult, error) {
	start := time.Now()
	log := logger.C(ctx).With().Str("url", doc.URL).Logger()
	log.Info().Msg("analyzing article")

	key := cache.ArticleKey(doc.URL)
	if cached, ok := s.read(ctx, key); ok {
		log.Info().Msg("cache hit")
		return cached, nil
	}

	log.Debug().Str("state", string(dom.StateScoring)).Msg("scoring")
	res, err := s.score(doc)
	if err != nil {
		log.Error().Err(err).Msg("error analyzing article")
		return dom.AnalysisResult{}, err
	}

	if s.cache.Available() {
		if b, err := json.Marshal(res); err != nil {
			log.Warn().Err(err).Msg("encode result for cache")
		} else if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			log.Warn().Err(err).Msg("cache write failed")
		}
	}
	log.Info().
		Str("state", string(dom.StateResponded)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis completed")

	s.schedule(ctx, doc, res)
	return res, nil
}

// Lookup returns the cached result for url
func (s *Svc) Lookup(ctx context.Context, url string) (dom.AnalysisResult, error) {
	if !s.cache.Available() {
		return dom.AnalysisResult{}, perr.NotImplementedf("Caching not available")
	}
	b, ok, err := s.cache.Get(ctx, cache.ArticleKey(url))
	if err != nil {
		return dom.AnalysisResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "cache read failed")
	}
	if !ok {
		return dom.AnalysisResult{}, perr.NotFoundf("Analysis not found for this URL")
	}
	var out dom.AnalysisResult
	if err := json.Unmarshal(b, &out); err != nil {
		return dom.AnalysisResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "cached analysis is unreadable")
	}
	return out, nil
}

// SaveVerification stores in under both its new id and its url
// without a cache the record is only logged
func (s *Svc) SaveVerification(ctx context.Context, in dom.VerificationInput) (dom.Verification, error) {
	log := logger.C(ctx).With().Str("url", in.URL).Logger()
	log.Info().Msg("saving verification")

	v := dom.Verification{
		ID:               uuid.NewString(),
		Timestamp:        s.now().Unix(),
		URL:              in.URL,
		Title:            in.Title,
		CredibilityScore: in.CredibilityScore,
		TrustLevel:       in.TrustLevel,
	}
	if in.Timestamp != nil {
		v.Timestamp = *in.Timestamp
	}

	if !s.cache.Available() {
		log.Warn().Msg("cache not available, logging verification only")
		log.Info().Interface("verification", v).Msg("verification data")
		return v, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return dom.Verification{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Failed to save verification")
	}
	for _, key := range []string{cache.VerificationKey(v.ID), cache.VerificationURLKey(v.URL)} {
		if err := s.cache.Set(ctx, key, b, cache.VerificationTTL); err != nil {
			log.Error().Err(err).Str("key", key).Msg("error saving verification")
			return dom.Verification{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "Failed to save verification: %v", err)
		}
	}
	return v, nil
}

// read treats any cache problem as a miss; the request path must not fail on the cache
func (s *Svc) read(ctx context.Context, key string) (dom.AnalysisResult, bool) {
	if !s.cache.Available() {
		return dom.AnalysisResult{}, false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed, scoring instead")
		return dom.AnalysisResult{}, false
	}
	if !ok {
		return dom.AnalysisResult{}, false
	}
	var out dom.AnalysisResult
	if err := json.Unmarshal(b, &out); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("cached analysis unreadable, scoring instead")
		return dom.AnalysisResult{}, false
	}
	if out.Sources == nil {
		out.Sources = []dom.SourceReference{}
	}
	return out, true
}

// score runs the scorer, turning a panic into the 500 the caller sees
func (s *Svc) score(doc dom.Document) (res dom.AnalysisResult, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = perr.Newf(perr.ErrorCodeUnknown, "Analysis failed: %v", v)
		}
	}()
	return dom.FromSignals(s.scorer.Analyze(doc.Title, doc.Content)), nil
}

// schedule hands off enrichment; a dropped job only costs the sources for this request
func (s *Svc) schedule(ctx context.Context, doc dom.Document, res dom.AnalysisResult) {
	log := logger.C(ctx).With().Str("url", doc.URL).Logger()
	if s.enrich == nil || !s.cache.Available() {
		log.Debug().Msg("enrichment skipped, no cache to merge into")
		return
	}
	job := dom.EnrichJob{
		URL:       doc.URL,
		Title:     doc.Title,
		Result:    res.WithSources(nil),
		RequestID: lumnet.RequestID(ctx),
	}
	if err := s.enrich.Enqueue(ctx, job); err != nil {
		log.Warn().Err(err).Str("state", string(dom.StateFailed)).Msg("enrichment not scheduled")
		return
	}
	log.Debug().Str("state", string(dom.StateEnriching)).Msg("enrichment scheduled")
}

var _ Service = (*Svc)(nil)
