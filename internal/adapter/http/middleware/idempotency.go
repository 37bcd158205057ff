package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/avelora/fincore/internal/usecase"
)

const (
	// IdempotencyKeyHeader carries the client-chosen retry key.
	IdempotencyKeyHeader = "Idempotency-Key"

	// ReplayHeader marks responses served from the idempotency store.
	ReplayHeader = "X-Idempotency-Replay"

	idempotencyTTL = 24 * time.Hour

	// inFlightMarker is the placeholder the store holds while the first
	// request with a key is still executing.
	inFlightMarker = "processing"
)

// IdempotencyMiddleware replays stored responses for repeated mutating
// requests carrying the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap applies idempotency handling to POST and PUT requests that carry
// a key; everything else passes through untouched.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		seen, stored, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if seen && stored != nil && string(stored) != inFlightMarker {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(ReplayHeader, "true")
			_, _ = w.Write(stored)
			return
		}

		rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// Only successful responses are worth replaying; a failed attempt
		// must be retryable.
		if rec.status >= 200 && rec.status < 300 {
			_ = m.store.Update(r.Context(), key, rec.body.Bytes(), idempotencyTTL)
		}
	})
}

func isMutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

type bodyRecorder struct {
	http.ResponseWriter

	status int
	body   bytes.Buffer
}

func (r *bodyRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
