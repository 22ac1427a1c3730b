package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// DBPinger reports whether the database is reachable.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// CacheHealth reports whether the cache backend is reachable.
type CacheHealth interface {
	Health(ctx context.Context) error
}

const healthCheckTimeout = 2 * time.Second

// HealthHandlers serves the readiness endpoint. The database is load-bearing
// and fails the check; the cache only degrades it.
type HealthHandlers struct {
	DB    DBPinger
	Cache CacheHealth
}

// Check handles GET/HEAD /healthz.
func (h *HealthHandlers) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			WriteError(w, ErrorParams{
				Code:    http.StatusServiceUnavailable,
				ErrCode: "unhealthy",
				Err:     errors.New("database unreachable"),
			})
			return
		}
	}

	cacheStatus := "disabled"
	if h.Cache != nil {
		cacheStatus = "ok"
		if err := h.Cache.Health(ctx); err != nil {
			cacheStatus = "degraded"
		}
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  cacheStatus,
	})
}
