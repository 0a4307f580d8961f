package health

import (
	"context"
	"net/http"
	"time"
)

// ReadinessHandler returns an HTTP handler for readiness probes.
// This runs all health checks in the aggregator.
func ReadinessHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		results := agg.CheckAll(ctx)
		status := agg.OverallStatus(results)

		w.Header().Set("Content-Type", "text/plain")

		switch status {
		case StatusHealthy:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		case StatusDegraded:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("DEGRADED"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("UNHEALTHY"))
		}
	}
}
