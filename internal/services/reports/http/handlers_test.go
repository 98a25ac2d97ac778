package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"truthlens/internal/platform/cache"
	phttp "truthlens/internal/platform/net/http"

	"github.com/go-chi/chi/v5"

	dom "truthlens/internal/services/reports/domain"
	"truthlens/internal/services/reports/repo"
	"truthlens/internal/services/reports/service"
)

func newRouter() stdhttp.Handler {
	m := chi.NewRouter()
	phttp.AdaptChi(m).Route("/api", func(api phttp.Router) {
		Register(api, service.New(repo.NewMemory(), cache.NewMemory(time.Minute), nil))
	})
	return m
}

func call(h stdhttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return rr
}

func stats(t *testing.T, h stdhttp.Handler) dom.Stats {
	t.Helper()
	rr := call(h, "GET", "/api/reports/stats", "")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("stats status=%d body=%s", rr.Code, rr.Body.String())
	}
	var s dom.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestReport_ThenStatsIncrements(t *testing.T) {
	h := newRouter()
	before := stats(t, h)

	rr := call(h, "POST", "/api/report", `{"articleUrl":"https://example.com/a","reason":"misleading","comment":"hm"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var ack dom.Submitted
	_ = json.Unmarshal(rr.Body.Bytes(), &ack)
	if !ack.Success || ack.Message != "Report submitted successfully" {
		t.Fatalf("ack %+v", ack)
	}

	after := stats(t, h)
	if after.TotalReports != before.TotalReports+1 || after.ReasonCounts["misleading"] != before.ReasonCounts["misleading"]+1 {
		t.Fatalf("before=%+v after=%+v", before, after)
	}
}

func TestReports_ForURLAndValidation(t *testing.T) {
	h := newRouter()
	call(h, "POST", "/api/report", `{"articleUrl":"https://example.com/a","reason":"spam"}`)

	rr := call(h, "GET", "/api/reports/https://example.com/a", "")
	var list dom.List
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if rr.Code != stdhttp.StatusOK || len(list.Reports) != 1 || list.Reports[0].Reason != "spam" {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = call(h, "GET", "/api/reports/https://example.com/none", "")
	if rr.Code != stdhttp.StatusOK || !bytes.Contains(rr.Body.Bytes(), []byte(`"reports":[]`)) {
		t.Fatalf("empty list: status=%d body=%s", rr.Code, rr.Body.String())
	}

	if rr := call(h, "POST", "/api/report", `{"reason":"spam"}`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("missing url: status=%d", rr.Code)
	}
}
