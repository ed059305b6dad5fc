package kit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PetStore/pkg/kit"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	l := kit.NewIPRateLimiter(2, 100*time.Millisecond)

	if !l.Allow("203.0.113.7") {
		t.Fatalf("first call denied")
	}
	if !l.Allow("203.0.113.7") {
		t.Fatalf("second call denied")
	}
	if l.Allow("203.0.113.7") {
		t.Fatalf("third call within window allowed")
	}
	if !l.Allow("203.0.113.8") {
		t.Fatalf("other ip denied by a full window it never used")
	}

	time.Sleep(150 * time.Millisecond)

	if !l.Allow("203.0.113.7") {
		t.Fatalf("call after window expiry denied")
	}
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := kit.NewIPRateLimiter(1, time.Minute)

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first write status=%d want=204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit status=%d want=429", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("forwarded ip status=%d want=204", rec.Code)
	}
}
