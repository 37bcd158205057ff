package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger returns a middleware that logs one line per request
// after the handler finishes, carrying the chi request id when present.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			tracker := &responseTracker{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(tracker, r)

			evt := logger.Info()
			if tracker.status >= http.StatusInternalServerError {
				evt = logger.Error()
			}

			evt.
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", tracker.status).
				Int("bytes", tracker.written).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

type responseTracker struct {
	http.ResponseWriter

	status  int
	written int
}

func (t *responseTracker) WriteHeader(status int) {
	t.status = status
	t.ResponseWriter.WriteHeader(status)
}

func (t *responseTracker) Write(p []byte) (int, error) {
	n, err := t.ResponseWriter.Write(p)
	t.written += n

	return n, err
}
