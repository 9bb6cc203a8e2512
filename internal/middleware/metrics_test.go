package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fcci/mockidentity/internal/metrics"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()

	r := chi.NewRouter()
	r.Use(Metrics(recorder))
	r.Get("/organization/scim/v1/Orgs/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/organization/scim/v1/Orgs/acme", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/some/unmapped/route", nil))

	snap := recorder.Snapshot()
	if got := snap.Requests[metrics.RequestKey{Route: "/organization/scim/v1/Orgs/*", Status: 200}]; got != 1 {
		t.Errorf("orgs route count = %d, want 1", got)
	}
	if got := snap.Requests[metrics.RequestKey{Route: FallbackRoute, Status: 200}]; got != 1 {
		t.Errorf("fallback count = %d, want 1", got)
	}
}

func TestMetrics_MarkFallbackOverridesPattern(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()
	var buf bytes.Buffer

	r := chi.NewRouter()
	r.Use(Logger(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.Use(Metrics(recorder))
	r.Get("/identity/scim/*", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "*") == "" {
			MarkFallback(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/identity/scim/", nil))
	if !strings.Contains(buf.String(), `"route":"fallback"`) {
		t.Errorf("log record should carry the fallback route, got %s", buf.String())
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/identity/scim/user@example.com", nil))

	snap := recorder.Snapshot()
	if got := snap.Requests[metrics.RequestKey{Route: FallbackRoute, Status: 200}]; got != 1 {
		t.Errorf("fallback count = %d, want 1", got)
	}
	if got := snap.Requests[metrics.RequestKey{Route: "/identity/scim/*", Status: 200}]; got != 1 {
		t.Errorf("scim route count = %d, want 1", got)
	}
}

func TestMarkFallback_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	// Must not panic when no mark is installed.
	MarkFallback(httptest.NewRequest(http.MethodGet, "/", nil).Context())
}
