package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports 503 when the database is down. Cache is optional; a
// failing cache is reported but keeps the service up since rate limiting fails open.
type HealthHandler struct {
	DB    Pinger
	Cache Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("database ping failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	body := map[string]string{"status": "ok"}
	if h.Cache != nil {
		body["cache"] = "ok"
		if err := h.Cache.Ping(ctx); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("cache ping failed")
			body["cache"] = "unavailable"
		}
	}
	writeJSON(w, http.StatusOK, body)
}
