// Package http provides http transport for analysis
package http

import (
	stdhttp "net/http"
	"net/url"

	"truthlens/internal/modkit/httpkit"
	perr "truthlens/internal/platform/errors"

	"github.com/go-chi/chi/v5"

	dom "truthlens/internal/services/analysis/domain"
	svc "truthlens/internal/services/analysis/service"
)

// Register mounts the analysis endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSONWith[dom.Document](r, "/analyze", httpkit.Lenient, h.analyze)
	httpkit.Get(r, "/analyze/*", h.lookup)
	httpkit.PostJSONWith[dom.VerificationInput](r, "/save_verification", httpkit.Lenient, h.saveVerification)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /api/analyze Analysis analyze
// @Summary Score an article, answering from the cache when possible
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body domain.Document true "Article"
// @Success 200 {object} domain.AnalysisResult "ok"
// @Router /api/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in dom.Document) (any, error) {
	res, err := h.svc.Analyze(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(res), nil
}

// swagger:route GET /api/analyze/{url} Analysis analyzeLookup
// @Summary Cached analysis for a url, enriched once the worker has run
// @Tags Analysis
// @Produce json
// @Success 200 {object} domain.AnalysisResult "ok"
// @Failure 404 "not analyzed or expired"
// @Failure 501 "no cache configured"
// @Router /api/analyze/{url} [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	target, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		return nil, perr.InvalidArgf("bad url: %v", err)
	}
	res, err := h.svc.Lookup(r.Context(), target)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(res), nil
}

// swagger:route POST /api/save_verification Analysis saveVerification
// @Summary Record that a user checked an article
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body domain.VerificationInput true "Verification"
// @Success 200 {object} domain.Verification "ok"
// @Router /api/save_verification [post]
func (h *handlers) saveVerification(r *stdhttp.Request, in dom.VerificationInput) (any, error) {
	v, err := h.svc.SaveVerification(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(v), nil
}
