package net

import (
	"context"
	"net/http"
	"testing"

	perr "truthlens/internal/platform/errors"
)

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "rid-1")
	if got := RequestID(ctx); got != "rid-1" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := RequestID(WithRequestID(context.Background(), "")); got != "" {
		t.Fatalf("empty id should not be stored, got %q", got)
	}
}

func TestFailure_NotFound(t *testing.T) {
	t.Parallel()

	status, env := Failure(perr.NotFoundf("Analysis not found for this URL"), "rid-2")
	if status != http.StatusNotFound || env.StatusCode != 404 || env.Status != "Not Found" {
		t.Fatalf("status = %d env = %+v", status, env)
	}
	if env.Code != perr.ErrorCodeNotFound || env.Error != "Analysis not found for this URL" || env.RequestID != "rid-2" {
		t.Fatalf("env = %+v", env)
	}
	if env.Data != nil {
		t.Fatal("error envelopes carry no data")
	}
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	env := Success(http.StatusCreated, map[string]bool{"success": true}, "rid-3")
	if env.StatusCode != 201 || env.Status != "Created" || env.Data == nil || env.Error != "" {
		t.Fatalf("env = %+v", env)
	}
}
