package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fcci/mockidentity/internal/metrics"
)

// FallbackRoute labels requests answered by the echo fallback or matched by
// no route pattern.
const FallbackRoute = "fallback"

const fallbackKey contextKey = "fallback"

type fallbackMark struct {
	hit bool
}

// Metrics records route, status and latency for every request.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)
			r = withFallbackMark(r)

			next.ServeHTTP(wrapped, r)

			recorder.ObserveRequest(routePattern(r), wrapped.status, time.Since(start))
		})
	}
}

// MarkFallback flags the request as answered by the echo fallback, even when
// a route pattern matched first. It is a no-op outside Logger or Metrics.
func MarkFallback(ctx context.Context) {
	if m, ok := ctx.Value(fallbackKey).(*fallbackMark); ok {
		m.hit = true
	}
}

// withFallbackMark installs the mark once; nested middleware share it.
func withFallbackMark(r *http.Request) *http.Request {
	if _, ok := r.Context().Value(fallbackKey).(*fallbackMark); ok {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), fallbackKey, &fallbackMark{}))
}

// routePattern returns the chi pattern that served r. chi fills the route
// context in place, so the value is available after next returns.
func routePattern(r *http.Request) string {
	if m, ok := r.Context().Value(fallbackKey).(*fallbackMark); ok && m.hit {
		return FallbackRoute
	}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return FallbackRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return FallbackRoute
}
