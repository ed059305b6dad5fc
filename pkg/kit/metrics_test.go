package kit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"PetStore/pkg/kit"
)

func routePath(r *http.Request) string { return r.URL.Path }

func TestMetricsMiddleware_CountsRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := kit.NewMetrics(reg)

	h := m.Middleware("catalog", routePath)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d want=204", rec.Code)
	}
	if got := testutil.ToFloat64(m.InFlight); got != 0 {
		t.Fatalf("in_flight=%v want=0", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("catalog", http.MethodGet, "/products", "204")); got != 1 {
		t.Fatalf("requests=%v want=1", got)
	}
}

func TestMetricsMiddleware_InFlightResetOnPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := kit.NewMetrics(reg)

	h := kit.Recoverer(m.Middleware("catalog", routePath)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=500", rec.Code)
	}
	if got := testutil.ToFloat64(m.InFlight); got != 0 {
		t.Fatalf("in_flight=%v want=0 after recovered panic", got)
	}
	if got := testutil.ToFloat64(m.Requests); got != 1 {
		t.Fatalf("requests=%v want=1", got)
	}
}

func TestMetricsMiddleware_PanicCountedAsServerError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := kit.NewMetrics(reg)

	h := m.Middleware("catalog", routePath)(kit.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("catalog", http.MethodGet, "/products", "500")); got != 1 {
		t.Fatalf("500 count=%v want=1", got)
	}
	if got := testutil.ToFloat64(m.InFlight); got != 0 {
		t.Fatalf("in_flight=%v want=0", got)
	}
}
