package http

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	})
}

// handleReady checks the storage backend and reports limiter state.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{}

	switch {
	case s.pinger == nil:
		checks["storage"] = "not_configured"
	default:
		if err := s.pinger.Ping(ctx); err != nil {
			checks["storage"] = "failed: " + err.Error()
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["storage"] = "ok"
		}
	}

	checks["cache"] = map[string]any{
		"summary_entries": s.summaryCache.Size(),
		"monthly_entries": s.monthlyCache.Size(),
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients":      s.rateLimiter.activeClients(),
		"rate_limit_hits":     atomic.LoadInt64(&s.metrics.rateLimitHits),
		"suspicious_requests": atomic.LoadInt64(&s.metrics.suspiciousRequests),
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": s.now().Format(time.RFC3339),
		"checks":    checks,
	})
}
