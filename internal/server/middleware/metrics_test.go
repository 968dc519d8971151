package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func makeRequest(e *echo.Echo, path string, rec http.ResponseWriter) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	e.ServeHTTP(rec, req)
}

func TestPrometheusMiddleware(t *testing.T) {
	clearRegisteredMetrics(t, DefaultMetricsConfig)
	e := echo.New()
	e.Use(Metrics())

	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})
	e.GET("/test_error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	rec := httptest.NewRecorder()
	for i := 0; i < 10; i++ {
		makeRequest(e, "/test", rec)
		makeRequest(e, "/test_error", rec)
	}
	for i := 0; i < 3; i++ {
		makeRequest(e, "/nope", rec)
	}

	makeRequest(e, "/metrics", rec)
	bodyString := rec.Body.String()
	if !strings.Contains(bodyString, `request_duration_seconds_count{code="200",method="GET",path="/test"} 10`) {
		t.Error("GET /test doesnt show")
	}
	if !strings.Contains(bodyString, `request_duration_seconds_count{code="500",method="GET",path="/test_error"} 10`) {
		t.Error("GET /test_error doesnt show")
	}
	if !strings.Contains(bodyString, `request_duration_seconds_count{code="404",method="GET",path="/not-found"} 3`) {
		t.Error("GET /not-found doesnt show")
	}
}

func clearRegisteredMetrics(t *testing.T, conf MetricsConfig) {
	_, err := registerHttpMetrics(conf)
	if err == nil {
		return
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		httpMetrics := are.ExistingCollector.(*prometheus.HistogramVec)
		httpMetrics.Reset()
		return
	}
	t.Errorf("unexpected error %v", err)
}
