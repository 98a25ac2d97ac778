// Package service implements report submission, lookup and stats
package service

import (
	"context"
	"encoding/json"
	"time"

	"truthlens/internal/platform/cache"
	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/logger"

	"github.com/google/uuid"

	dom "truthlens/internal/services/reports/domain"
)

// Service is the reports surface the http layer calls
type Service = dom.ServicePort

// Svc implements Service over a primary store plus the per url cache list
type Svc struct {
	store dom.StorePort
	cache cache.Cache
	now   func() time.Time
}

// New constructs the service; a nil cache becomes cache.Noop
func New(store dom.StorePort, c cache.Cache, now func() time.Time) *Svc {
	if c == nil {
		c = cache.Noop{}
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{store: store, cache: c, now: now}
}

// Submit saves the report and prepends it to reports:{url}
func (s *Svc) Submit(ctx context.Context, in dom.ReportInput) (dom.Submitted, error) {
	log := logger.C(ctx).With().Str("url", in.ArticleURL).Logger()
	log.Info().Msg("received report")

	r := dom.Report{
		ID:            uuid.NewString(),
		ArticleURL:    in.ArticleURL,
		Reason:        in.Reason,
		Comment:       in.Comment,
		UserReference: in.UserReference,
		Timestamp:     s.now().Unix(),
	}
	if in.Timestamp != nil && *in.Timestamp != 0 {
		r.Timestamp = *in.Timestamp
	}

	if err := s.store.Save(ctx, r); err != nil {
		log.Error().Err(err).Msg("error submitting report")
		return dom.Submitted{}, failed(err, "Failed to submit report: %v")
	}
	log.Info().Str("report_id", r.ID).Msg("saved report")

	if s.cache.Available() {
		b, _ := json.Marshal(r)
		if err := s.cache.Push(ctx, cache.ReportsKey(r.ArticleURL), b, cache.ReportsTTL); err != nil {
			// the primary store has it; the list is only a fallback
			log.Warn().Err(err).Msg("report not pushed to cache list")
		}
	}
	return dom.Submitted{Success: true, Message: "Report submitted successfully"}, nil
}

// ForURL returns the stored reports for url, falling back to the cache list when the store has none
func (s *Svc) ForURL(ctx context.Context, url string) (dom.List, error) {
	out, err := s.store.ByURL(ctx, url)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("url", url).Msg("error retrieving reports")
		return dom.List{}, failed(err, "Failed to retrieve reports: %v")
	}
	if len(out) == 0 && s.cache.Available() {
		out, err = s.fromCache(ctx, url)
		if err != nil {
			logger.C(ctx).Error().Err(err).Str("url", url).Msg("error retrieving reports")
			return dom.List{}, failed(err, "Failed to retrieve reports: %v")
		}
	}
	if out == nil {
		out = []dom.Report{}
	}
	return dom.List{Reports: out}, nil
}

// Stats counts all stored reports
func (s *Svc) Stats(ctx context.Context) (dom.Stats, error) {
	c, err := s.store.Counts(ctx)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("error retrieving report stats")
		return dom.Stats{}, failed(err, "Failed to retrieve report stats: %v")
	}
	if c.ByReason == nil {
		c.ByReason = map[string]int64{}
	}
	return dom.Stats{TotalReports: c.Total, ReasonCounts: c.ByReason, Timestamp: s.now().Unix()}, nil
}

// fromCache decodes the list newest first; entries that do not decode are skipped
func (s *Svc) fromCache(ctx context.Context, url string) ([]dom.Report, error) {
	raw, err := s.cache.List(ctx, cache.ReportsKey(url))
	if err != nil {
		return nil, err
	}
	out := make([]dom.Report, 0, len(raw))
	for _, b := range raw {
		var r dom.Report
		if err := json.Unmarshal(b, &r); err != nil {
			logger.C(ctx).Warn().Err(err).Str("url", url).Msg("skipping unreadable cached report")
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// failed keeps a store error's code when it has one, otherwise reports a 500
func failed(err error, format string) error {
	code := perr.ErrorCodeUnknown
	if e, ok := perr.As(err); ok {
		code = e.Code()
	}
	return perr.Wrapf(err, code, format, err)
}

var _ Service = (*Svc)(nil)
