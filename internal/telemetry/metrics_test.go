package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordMutation(t *testing.T) {
	m := NewMetrics()
	m.RecordMutation("tasks", "created")
	m.RecordMutation("tasks", "created")
	m.RecordMutation("posts", "deleted")

	require.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("tasks", "created")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("posts", "deleted")))
}

func TestMetricsHandlerExposesRequests(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(http.MethodGet, "/tasks/", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `crudkit_http_requests_total{method="GET",route="/tasks/",status="200"} 1`)
	require.Contains(t, body, `route="unmatched"`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordMutation("tasks", "created")
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
