package service

import (
	"context"
	"encoding/json"
	"fmt"

	"truthlens/internal/core/sampler"
	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/logger"

	adom "truthlens/internal/services/analysis/domain"
	dom "truthlens/internal/services/enrich/domain"
)

// Process samples sources for job and blindly overwrites the cached result
// there is no version check: whichever write lands last is what readers see
// failures are logged and leave the cache as it was; nothing is retried
func (s *Svc) Process(ctx context.Context, c cache.Cache, job dom.Job) (state adom.State) {
	log := logger.C(ctx).With().Str("url", job.URL).Logger()
	log.Debug().Str("state", string(adom.StateEnriching)).Msg("enrichment started")

	fail := func(err error, msg string) adom.State {
		log.Error().Err(err).Str("state", string(adom.StateFailed)).Msg(msg)
		return adom.StateFailed
	}

	defer func() {
		if v := recover(); v != nil {
			state = fail(fmt.Errorf("panic: %v", v), "error updating sources")
		}
	}()

	if !c.Available() {
		return fail(fmt.Errorf("no cache handle"), "enrichment has nowhere to write")
	}
	if err := s.lim.Wait(ctx, sampler.HostOf(job.URL)); err != nil {
		return fail(err, "enrichment throttled")
	}

	sources, err := s.smp.Sample(ctx, job.URL, job.Title)
	if err != nil {
		return fail(err, "error updating sources")
	}

	b, err := json.Marshal(job.Result.WithSources(sources))
	if err != nil {
		return fail(err, "encode enriched result")
	}
	if err := c.Set(ctx, cache.ArticleKey(job.URL), b, s.cfg.TTL); err != nil {
		return fail(err, "error updating sources")
	}

	log.Info().Str("state", string(adom.StateMerged)).Int("sources", len(sources)).Msg("updated with sources")
	return adom.StateMerged
}
