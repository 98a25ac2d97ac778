package httpkit

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "truthlens/internal/platform/errors"
	phttp "truthlens/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type probe struct {
	URL string `json:"url" validate:"required"`
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func serve(r Router, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.Mux().ServeHTTP(rec, req)
	return rec
}

func TestGet_EnvelopeBareAndError(t *testing.T) {
	t.Parallel()

	r := newRouter()
	Get(r, "/wrapped", func(*http.Request) (any, error) { return map[string]string{"a": "b"}, nil })
	Get(r, "/bare", func(*http.Request) (any, error) { return Bare([]int{1, 2}), nil })
	Get(r, "/missing", func(*http.Request) (any, error) { return nil, perr.NotFoundf("no report") })

	rec := serve(r, http.MethodGet, "/wrapped", "")
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || env.StatusCode != http.StatusOK {
		t.Fatalf("wrapped = %d %+v", rec.Code, env)
	}

	rec = serve(r, http.MethodGet, "/bare", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[1,2]" {
		t.Fatalf("bare body = %q", got)
	}

	rec = serve(r, http.MethodGet, "/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing = %d", rec.Code)
	}
}

func TestPostJSONWith_LenientAndValidation(t *testing.T) {
	t.Parallel()

	r := newRouter()
	PostJSONWith(r, "/analyze", Lenient, func(_ *http.Request, in probe) (any, error) {
		if in.URL == "boom" {
			return nil, errors.New("boom")
		}
		return Bare(in), nil
	})

	rec := serve(r, http.MethodPost, "/analyze", `{"url":"https://example.com","extra":1}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "example.com") {
		t.Fatalf("lenient post = %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodPost, "/analyze", `{"title":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing url = %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodPost, "/analyze", `{"url":"boom"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("handler error = %d", rec.Code)
	}
}

func TestMountUnder(t *testing.T) {
	t.Parallel()

	root := newRouter()
	var hits int
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	}
	MountUnder(root, "/api", []func(http.Handler) http.Handler{mw}, func(sub Router) {
		Get(sub, "/health", func(*http.Request) (any, error) { return Bare("ok"), nil })
	})
	MountUnder(root, "/plain", nil, func(sub Router) {
		Get(sub, "/x", func(*http.Request) (any, error) { return Bare(bytes.MinRead), nil })
	})

	if rec := serve(root, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("api/health = %d", rec.Code)
	}
	if rec := serve(root, http.MethodGet, "/plain/x", ""); rec.Code != http.StatusOK {
		t.Fatalf("plain/x = %d", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("middleware hits = %d", hits)
	}
}
