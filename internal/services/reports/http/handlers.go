// Package http provides http transport for user reports
package http

import (
	stdhttp "net/http"
	"net/url"

	"truthlens/internal/modkit/httpkit"
	perr "truthlens/internal/platform/errors"

	"github.com/go-chi/chi/v5"

	dom "truthlens/internal/services/reports/domain"
)

// Register mounts the report endpoints on the given router
func Register(r httpkit.Router, s dom.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSONWith[dom.ReportInput](r, "/report", httpkit.Lenient, h.submit)
	httpkit.Get(r, "/reports/stats", h.stats)
	httpkit.Get(r, "/reports/*", h.forURL)
}

type handlers struct{ svc dom.ServicePort }

// swagger:route POST /api/report Reports reportSubmit
// @Summary Flag an article
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Report"
// @Success 200 {object} domain.Submitted "ok"
// @Router /api/report [post]
func (h *handlers) submit(r *stdhttp.Request, in dom.ReportInput) (any, error) {
	out, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(out), nil
}

// swagger:route GET /api/reports/{url} Reports reportsForURL
// @Summary Reports filed against an article
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.List "ok"
// @Router /api/reports/{url} [get]
func (h *handlers) forURL(r *stdhttp.Request) (any, error) {
	target, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		return nil, perr.InvalidArgf("bad url: %v", err)
	}
	out, err := h.svc.ForURL(r.Context(), target)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(out), nil
}

// swagger:route GET /api/reports/stats Reports reportsStats
// @Summary Report totals by reason
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.Stats "ok"
// @Router /api/reports/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	out, err := h.svc.Stats(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(out), nil
}
