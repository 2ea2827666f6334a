// AngelaMos | 2026
// idempotency_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func idempotencyRequest(method, key, username string) *http.Request {
	r := httptest.NewRequest(method, "/v1/applicants", nil)
	if key != "" {
		r.Header.Set("Idempotency-Key", key)
	}
	if username != "" {
		ctx := context.WithValue(r.Context(), UsernameKey, username)
		r = r.WithContext(ctx)
	}
	return r
}

func countingHandler(hits *atomic.Int64, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		//nolint:errcheck // test handler
		_, _ = w.Write([]byte(`{"hit":` + strconv.FormatInt(n, 10) + `}`))
	})
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var hits atomic.Int64
	handler := NewIdempotency(time.Hour).Handler(
		countingHandler(&hits, http.StatusCreated),
	)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, idempotencyRequest(http.MethodPost, "key-1", "john"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, idempotencyRequest(http.MethodPost, "key-1", "john"))

	if hits.Load() != 1 {
		t.Errorf("handler hits = %d, want 1", hits.Load())
	}
	if second.Code != http.StatusCreated {
		t.Errorf("replay status = %d, want %d", second.Code, http.StatusCreated)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf(
			"replay body = %q, want %q",
			second.Body.String(),
			first.Body.String(),
		)
	}
	if second.Header().Get("Idempotency-Replayed") != "true" {
		t.Error("replay missing Idempotency-Replayed header")
	}
}

func TestIdempotencyScopesByUsername(t *testing.T) {
	var hits atomic.Int64
	handler := NewIdempotency(time.Hour).Handler(
		countingHandler(&hits, http.StatusCreated),
	)

	handler.ServeHTTP(
		httptest.NewRecorder(),
		idempotencyRequest(http.MethodPost, "key-1", "john"),
	)
	handler.ServeHTTP(
		httptest.NewRecorder(),
		idempotencyRequest(http.MethodPost, "key-1", "mary"),
	)

	if hits.Load() != 2 {
		t.Errorf("handler hits = %d, want 2 (distinct users)", hits.Load())
	}
}

func TestIdempotencySkipsWithoutKey(t *testing.T) {
	var hits atomic.Int64
	handler := NewIdempotency(time.Hour).Handler(
		countingHandler(&hits, http.StatusCreated),
	)

	for range 3 {
		handler.ServeHTTP(
			httptest.NewRecorder(),
			idempotencyRequest(http.MethodPost, "", "john"),
		)
	}

	if hits.Load() != 3 {
		t.Errorf("handler hits = %d, want 3", hits.Load())
	}
}

func TestIdempotencyIgnoresReads(t *testing.T) {
	var hits atomic.Int64
	handler := NewIdempotency(time.Hour).Handler(
		countingHandler(&hits, http.StatusOK),
	)

	for range 2 {
		handler.ServeHTTP(
			httptest.NewRecorder(),
			idempotencyRequest(http.MethodGet, "key-1", "john"),
		)
	}

	if hits.Load() != 2 {
		t.Errorf("handler hits = %d, want 2", hits.Load())
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	var hits atomic.Int64
	handler := NewIdempotency(time.Hour).Handler(
		countingHandler(&hits, http.StatusBadRequest),
	)

	handler.ServeHTTP(
		httptest.NewRecorder(),
		idempotencyRequest(http.MethodPost, "key-1", "john"),
	)
	handler.ServeHTTP(
		httptest.NewRecorder(),
		idempotencyRequest(http.MethodPost, "key-1", "john"),
	)

	if hits.Load() != 2 {
		t.Errorf("handler hits = %d, want 2 (failures retried)", hits.Load())
	}
}
