package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceSnapshotAndExposition(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest("GET", "/students", 200, 20*time.Millisecond)
	m.ObserveUpstreamRequest("GET", "/students", 200, 10*time.Millisecond)
	m.ObserveUpstreamRequest("GET", "/payments", 0, 30*time.Millisecond)
	m.ObserveStoreAction("students", "list", nil)
	m.ObserveStoreAction("students", "list", errors.New("boom"))
	m.ObserveSuperseded("students", "list")

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.Equal(t, uint64(2), snap.UpstreamRequestsTotal)
	assert.Equal(t, uint64(1), snap.UpstreamFailures)
	assert.Equal(t, uint64(1), snap.SupersededResponses)
	assert.InDelta(t, 20.0, snap.AverageUpstreamDurationMs, 0.001)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `store_superseded_responses_total{op="list",store="students"} 1`))
	assert.True(t, strings.Contains(body, `store_actions_total{op="list",outcome="error",store="students"} 1`))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	m.ObserveSuperseded("x", "y")
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
