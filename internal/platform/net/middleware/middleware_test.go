package middleware

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"truthlens/internal/platform/logger"
	pnet "truthlens/internal/platform/net"
)

var logBuf bytes.Buffer

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Format: "json", Level: "debug", Writer: &logBuf})
	os.Exit(m.Run())
}

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func lastLine(t *testing.T) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(logBuf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("log line not json: %q", lines[len(lines)-1])
	}
	return m
}

func TestAccessLog_RequestIDStatusAndSlow(t *testing.T) {
	logBuf.Reset()
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}), RequestID(), RequestLogContext, AccessLogZerolog(AccessLogOptions{Slow: time.Millisecond}))

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/https%3A%2F%2Fexample.com", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	m := lastLine(t)
	if m["request_id"] != "rid-1" || m["status"] != float64(404) || m["bytes"] != float64(4) {
		t.Fatalf("access line = %v", m)
	}
	if m["level"] != "warn" || m["slow"] != true {
		t.Fatalf("slow request not flagged: %v", m)
	}
	if m["path"] != "/api/analyze/https%3A%2F%2Fexample.com" {
		t.Fatalf("path = %v", m["path"])
	}
}

func TestAccessLog_DefaultStatusAndErrors(t *testing.T) {
	logBuf.Reset()
	ok := AccessLogZerolog(AccessLogOptions{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if m := lastLine(t); m["status"] != float64(200) || m["level"] != "info" {
		t.Fatalf("implicit 200 = %v", m)
	}

	bad := AccessLogZerolog(AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	bad.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
	if m := lastLine(t); m["level"] != "error" {
		t.Fatalf("5xx level = %v", m["level"])
	}
}

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	logBuf.Reset()
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("scorer exploded") }),
		RequestID(), RecoverJSON)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	req.Header.Set("X-Request-Id", "rid-panic")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var env pnet.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.RequestID != "rid-panic" || rec.Header().Get("X-Request-ID") != "rid-panic" {
		t.Fatalf("request id lost: %+v", env)
	}
	if !strings.Contains(logBuf.String(), "scorer exploded") {
		t.Fatal("panic value not logged")
	}
}

func TestCORS_PreflightFromExtension(t *testing.T) {
	h := CORS(CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "chrome-extension://abc")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("allow methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestCORS_RestrictedOrigin(t *testing.T) {
	h := CORS(CORSOptions{AllowedOrigins: []string{"https://news.example"}})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/api/reports/stats", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestAdapters_Compose(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); !ok {
			t.Error("timeout did not set a deadline")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(strings.Repeat(`{"k":"v"}`, 200)))
	}), RealIP(), NoCache(), Compress(flate.BestSpeed), Timeout(time.Second))

	req := httptest.NewRequest(http.MethodGet, "/api/meta/version", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("not compressed: %v", rec.Header())
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatal("no cache headers missing")
	}
}

func TestRateLimit_PerClientAndEnvelope(t *testing.T) {
	seen := map[string]int{}
	allow := func(key string) bool {
		seen[key]++
		return seen[key] <= 2
	}
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), RequestID(), RateLimit(allow))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for range 2 {
		if rec := do("10.0.0.1:5000"); rec.Code != http.StatusNoContent {
			t.Fatalf("within budget: %d", rec.Code)
		}
	}
	rec := do("10.0.0.1:6000")
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("over budget: %d %v", rec.Code, rec.Header())
	}
	var env pnet.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Error != "rate limit exceeded" {
		t.Fatalf("429 body = %s", rec.Body.String())
	}
	if rec := do("10.0.0.2:5000"); rec.Code != http.StatusNoContent {
		t.Fatalf("other client throttled: %d", rec.Code)
	}
	if seen["10.0.0.1"] != 3 {
		t.Fatalf("port should not split the bucket: %v", seen)
	}
}
