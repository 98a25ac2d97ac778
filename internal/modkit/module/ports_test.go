package module

import (
	"testing"

	phttp "truthlens/internal/platform/net/http"
	kit "truthlens/internal/platform/testkit"
)

type enqueuer interface{ Enqueue(string) bool }

type queue struct{}

func (queue) Enqueue(string) bool { return true }

type bundle struct {
	Queue   enqueuer
	private enqueuer
}

type stub struct{ ports any }

func (s stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any               { return s.ports }
func (s stub) Name() string             { return "enrich" }

func TestPortsOf(t *testing.T) {
	t.Parallel()

	if _, ok := PortsOf[enqueuer](stub{ports: queue{}}); !ok {
		t.Fatal("direct implementation not found")
	}
	if _, ok := PortsOf[enqueuer](stub{ports: bundle{Queue: queue{}}}); !ok {
		t.Fatal("exported field not found")
	}
	if _, ok := PortsOf[enqueuer](stub{ports: bundle{private: queue{}}}); ok {
		t.Fatal("unexported field must be skipped")
	}
	if _, ok := PortsOf[enqueuer](stub{}); ok {
		t.Fatal("nil ports should not match")
	}
}

func TestMustPortsOf_PanicsWithModuleName(t *testing.T) {
	t.Parallel()

	r := kit.MustPanic(t, func() { MustPortsOf[enqueuer](stub{ports: 42}) })
	if r != "module: requested port not found on module enrich" {
		t.Fatalf("recover = %v", r)
	}
}
