package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/fcci/mockidentity/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /_mock/metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	keys := make([]metrics.RequestKey, 0, len(snap.Requests))
	for k := range snap.Requests {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Route != keys[j].Route {
			return keys[i].Route < keys[j].Route
		}
		return keys[i].Status < keys[j].Status
	})

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "# TYPE mockidentity_http_requests_total counter\n")
	for _, k := range keys {
		writeMetric(w, "mockidentity_http_requests_total{route=%q,status=\"%d\"} %d\n", k.Route, k.Status, snap.Requests[k])
	}

	writeMetric(w, "mockidentity_http_request_duration_seconds_count %d\n", snap.RequestDurationCount)
	writeMetric(w, "mockidentity_http_request_duration_seconds_sum %.6f\n", float64(snap.RequestDurationTotalNs)/1e9)
	writeMetric(w, "mockidentity_echoed_bytes_total %d\n", snap.EchoedBytes)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
