package http

import (
	"net/http"
	"time"

	"github.com/aleasistemi/botmanager/internal/logger"
)

// withLogging emits one access-log line per request: method, uri, status,
// response size and latency. The status and size come from the decorating
// responseWriter; the logger comes from the request context, so the line
// carries the trace id set by withTraceID.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
