package handlers

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/hlog"
)

// RecoverWrapper wraps an http.Handler with panic recovery
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				hlog.FromRequest(r).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "An unknown error occurred!"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
