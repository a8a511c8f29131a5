package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/prometheus"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/handlers"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/middleware"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "screening"})
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		ScreeningHandler: handlers.NewScreeningHandler(nil, nil),
		HealthHandler:    handlers.NewHealthHandler("test"),
		MetricsCollector: collector,
	})
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.NotEmpty(t, body)
}

func TestRouter_ClassifyRoute(t *testing.T) {
	router := testRouter(t)

	body, _ := json.Marshal(map[string]any{"factor_ids": []string{"sanctioned"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/factors/classify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sanctions")
}

func TestRouter_GetFactorRoute(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/factors/pep", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "political_exposure")
}

func TestRouter_RecordsRequestMetrics(t *testing.T) {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "screening"})
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	logCfg := middleware.DefaultLoggingConfig()
	logCfg.Metrics = metrics

	router := NewRouter(RouterConfig{
		ScreeningHandler: handlers.NewScreeningHandler(nil, nil),
		LoggingConfig:    &logCfg,
		MetricsCollector: collector,
	})

	body, _ := json.Marshal(map[string]any{"factor_ids": []string{"pep"}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/factors/classify", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	got := promtestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/factors/classify", "200"))
	assert.Equal(t, 1.0, got)
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NilHandlersAreSkipped(t *testing.T) {
	router := NewRouter(RouterConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORSApplied(t *testing.T) {
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = []string{"https://ui.example.com"}
	router := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler("test"),
		CORSConfig:    &cors,
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://ui.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
