// AngelaMos | 2026
// idempotency.go

package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

const idempotencyHeader = "Idempotency-Key"

type idempotentResponse struct {
	status      int
	contentType string
	body        []byte
	storedAt    int64
}

type responseCapture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *responseCapture) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated mutating request
// carrying the same Idempotency-Key, so a client retry after a lost
// response cannot double-create. Keys are scoped to the authenticated
// username, method, and path, and entries age out in-process.
type Idempotency struct {
	mu      sync.Mutex
	entries map[string]*idempotentResponse
	ttl     time.Duration
}

func NewIdempotency(ttl time.Duration) *Idempotency {
	i := &Idempotency{
		entries: make(map[string]*idempotentResponse),
		ttl:     ttl,
	}
	go i.cleanup()
	return i
}

func (i *Idempotency) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-i.ttl).Unix()

		i.mu.Lock()
		for key, entry := range i.entries {
			if entry.storedAt < cutoff {
				delete(i.entries, key)
			}
		}
		i.mu.Unlock()
	}
}

func (i *Idempotency) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get(idempotencyHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := GetUsername(r.Context()) + "\x00" +
			r.Method + "\x00" +
			r.URL.Path + "\x00" +
			token

		i.mu.Lock()
		stored, ok := i.entries[key]
		i.mu.Unlock()

		if ok {
			w.Header().Set("Content-Type", stored.contentType)
			w.Header().Set("Idempotency-Replayed", "true")
			w.WriteHeader(stored.status)
			//nolint:errcheck // best-effort replay write
			_, _ = w.Write(stored.body)
			return
		}

		capture := &responseCapture{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(capture, r)

		// Only successful outcomes are worth replaying; a failed attempt
		// should be retried for real.
		if capture.status >= http.StatusMultipleChoices {
			return
		}

		i.mu.Lock()
		i.entries[key] = &idempotentResponse{
			status:      capture.status,
			contentType: capture.Header().Get("Content-Type"),
			body:        capture.body.Bytes(),
			storedAt:    time.Now().Unix(),
		}
		i.mu.Unlock()
	})
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
