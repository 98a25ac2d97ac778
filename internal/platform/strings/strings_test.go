package strings

import (
	"slices"
	"testing"

	kit "truthlens/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); !slices.Equal(got, def) {
		t.Fatalf("nil = %v", got)
	}
	if got := IfEmpty([]string{"PUT"}, def); !slices.Equal(got, []string{"PUT"}) {
		t.Fatalf("set = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("meta", "name"); got != "meta" {
		t.Fatalf("got %q", got)
	}
	if r := kit.MustPanic(t, func() { MustString("  ", "name") }); r != "name is required" {
		t.Fatalf("panic = %v", r)
	}
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{"/meta/": "/meta", " meta ": "/meta", "//api//v1/": "/api//v1"} {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		kit.MustPanic(t, func() { MustPrefix(in) })
	}
}
