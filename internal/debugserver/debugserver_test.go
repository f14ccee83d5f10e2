package debugserver

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/runtime/internal/obsmetrics"
)

func TestHealthzReturnsOK(t *testing.T) {
	s := New(nil)
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestReportReturnsNoContentBeforeAnyRun(t *testing.T) {
	s := New(nil)
	req := httptest.NewRequest("GET", "/report", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, 204, rec.Code)
}

func TestReportReturnsLastRecordedReport(t *testing.T) {
	s := New(nil)
	s.SetLastReport("Total cost: $0.010000 | Total tokens: 80\n")

	req := httptest.NewRequest("GET", "/report", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total cost")
	assert.NotEmpty(t, rec.Header().Get("X-Last-Run-At"))
}

func TestMetricsEndpointServedWhenConfigured(t *testing.T) {
	metrics := obsmetrics.New()
	s := New(metrics)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
}

func TestMetricsEndpointAbsentWhenNil(t *testing.T) {
	s := New(nil)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}
