package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.DebugLevel,
		"loud":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild_StaticFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Service: "truthlens-api", Component: "root", Writer: &buf})

	l.Debug().Msg("dropped")
	l.Info().Msg("kept")

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "dropped") {
		t.Fatalf("debug line leaked at info level: %s", line)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("not json: %q", line)
	}
	if m["service"] != "truthlens-api" || m["component"] != "root" || m["message"] != "kept" {
		t.Fatalf("fields = %v", m)
	}
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Format: "console", Writer: &buf})
	l.Info().Str("url", "https://example.com").Msg("scored")
	if out := buf.String(); !strings.Contains(out, "scored") || !strings.Contains(out, "url=") {
		t.Fatalf("console output = %q", out)
	}
}

func TestWithRequest_And_C(t *testing.T) {
	var buf bytes.Buffer
	base := build(Options{Format: "json", Writer: &buf})
	root.Store(&base)

	ctx := WithRequest(context.Background(), "req-123")
	C(ctx).Info().Msg("tagged")
	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Fatalf("missing request id: %s", buf.String())
	}

	bg := context.Background()
	if WithRequest(bg, "") != bg {
		t.Fatal("empty id should leave ctx untouched")
	}
	if C(bg) != Get() {
		t.Fatal("bare ctx should yield the root")
	}

	buf.Reset()
	Named("worker").Info().Msg("named")
	if !strings.Contains(buf.String(), `"component":"worker"`) {
		t.Fatalf("named = %s", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}
