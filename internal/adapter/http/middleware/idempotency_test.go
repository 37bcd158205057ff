package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if s.checkAndSetFn != nil {
		return s.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func postWithKey(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewBufferString(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotencySkipsReadsAndKeylessRequests(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			t.Fatal("store must not be consulted")
			return false, nil, nil
		},
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/accounts/a1", nil),
		postWithKey(""),
	} {
		called := false
		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})).ServeHTTP(httptest.NewRecorder(), req)

		if !called {
			t.Fatalf("expected %s %s to pass through", req.Method, req.URL.Path)
		}
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return true, []byte(`{"cached":true}`), nil
		},
	})

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on replay")
	})).ServeHTTP(rr, postWithKey("key-1"))

	if rr.Header().Get(ReplayHeader) != "true" {
		t.Fatal("expected replay header")
	}
	if rr.Body.String() != `{"cached":true}` {
		t.Fatalf("unexpected replayed body: %s", rr.Body.String())
	}
}

func TestIdempotencyDoesNotReplayInFlightMarker(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return true, []byte(inFlightMarker), nil
		},
	})

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(httptest.NewRecorder(), postWithKey("key-2"))

	if !called {
		t.Fatal("expected in-flight key to fall through to the handler")
	}
}

func TestIdempotencyStoresSuccessfulResponses(t *testing.T) {
	var stored []byte
	mw := NewIdempotencyMiddleware(&stubIdempotencyStore{
		updateFn: func(_ context.Context, _ string, response []byte, _ time.Duration) error {
			stored = append([]byte(nil), response...)
			return nil
		},
	})

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})).ServeHTTP(rr, postWithKey("key-3"))

	if string(stored) != `{"ok":true}` {
		t.Fatalf("expected body stored for replay, got %s", stored)
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubIdempotencyStore{
		updateFn: func(context.Context, string, []byte, time.Duration) error {
			t.Fatal("failed responses must stay retryable")
			return nil
		},
	})

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})).ServeHTTP(httptest.NewRecorder(), postWithKey("key-4"))
}

func TestIdempotencyFailsClosedOnStoreError(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	})

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the store errors")
	})).ServeHTTP(rr, postWithKey("key-5"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
