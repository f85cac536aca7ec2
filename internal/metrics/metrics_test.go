package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.KnockAttempt(ResultSuccess)
	m.KnockAttempt(ResultSuccess)
	m.KnockAttempt(ResultFailure)
	m.ValidationFailures("serverPort", "allowIp", "serverPort")

	if got := testutil.ToFloat64(m.knockAttempts.WithLabelValues(ResultSuccess)); got != 2 {
		t.Fatalf("success attempts = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.knockAttempts.WithLabelValues(ResultFailure)); got != 1 {
		t.Fatalf("failed attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.validationFailures.WithLabelValues("serverPort")); got != 2 {
		t.Fatalf("serverPort failures = %v, want 2", got)
	}
}

func TestMiddlewareObservesStatus(t *testing.T) {
	m := New(WithNamespace("test"))
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/knock", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := testutil.CollectAndCount(m.requestDuration, "test_http_request_duration_seconds"); got != 1 {
		t.Fatalf("expected one observed series, got %d", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.KnockAttempt(ResultSuccess)
	m.ObserveRequest(http.MethodGet, http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`knock_attempts_total{result="success"} 1`,
		`knock_http_request_duration_seconds_count{method="GET",status="200"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in exposition:\n%s", want, body)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.KnockAttempt(ResultSuccess)
	m.ValidationFailures("x")
	m.ObserveRequest(http.MethodGet, http.StatusOK, time.Second)
}
