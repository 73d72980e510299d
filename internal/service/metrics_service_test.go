package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue reads a counter sample from the registry, matching the given label pair.
func counterValue(t *testing.T, m *MetricsService, name, label, value string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
			if label == "" {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func registrationCount(t *testing.T, m *MetricsService, result string) float64 {
	return counterValue(t, m, "class_registrations_total", "result", result)
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordRegistration(RegistrationSucceeded)
	m.RecordRegistration(RegistrationSucceeded)
	m.RecordRegistration(RegistrationFailed)
	m.RecordConnection()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/classes", http.StatusOK, 5*time.Millisecond)
	m.ObserveDBQuery("search_classes", time.Millisecond)
	m.ObserveSearchResults(3)

	assert.Equal(t, 2.0, registrationCount(t, m, RegistrationSucceeded))
	assert.Equal(t, 1.0, registrationCount(t, m, RegistrationFailed))
	assert.Equal(t, 1.0, counterValue(t, m, "tutor_connections_total", "", ""))
	assert.Equal(t, 1.0, counterValue(t, m, "http_requests_total", "path", "/api/v1/classes"))
}

func TestMetricsServiceHandlerExposesRegistry(t *testing.T) {
	m := NewMetricsService()
	m.RecordRegistration(RegistrationRejected)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class_registrations_total{result="rejected"} 1`)
	assert.Contains(t, rec.Body.String(), "goroutines_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordRegistration(RegistrationSucceeded)
		m.RecordConnection()
		m.ObserveSearchResults(1)
		m.ObserveDBQuery("q", time.Millisecond)
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
