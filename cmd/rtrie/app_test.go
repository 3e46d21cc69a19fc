package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/rtrie/config"
	"github.com/rohanthewiz/rtrie/consts"
	"github.com/rohanthewiz/rtrie/logger"
)

func testApp() *app {
	cfg := config.Default()
	return newApp(cfg, logger.Noop{})
}

func TestHello(t *testing.T) {
	a := testApp()

	response := a.server.Request(consts.MethodGet, "/", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "Hello World")
	assert.Equal(t, len(response.Header(consts.HeaderRequestID)), 36)
}

func TestUserAPI(t *testing.T) {
	a := testApp()

	response := a.server.Request(consts.MethodGet, "/api/user/42", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "{\"id\":\"42\"}\n")

	response = a.server.Request(consts.MethodPost, "/api/user", nil, strings.NewReader(`{"name":"ada"}`))
	assert.Equal(t, response.Status(), 201)
	assert.Equal(t, string(response.Body()), "{\"name\":\"ada\"}\n")

	response = a.server.Request(consts.MethodPost, "/api/user", nil, strings.NewReader(`{"name"`))
	assert.Equal(t, response.Status(), consts.StatusBadRequest)

	response = a.server.Request(consts.MethodPost, "/api/user", nil, nil)
	assert.Equal(t, response.Status(), 422)
}

func TestAppMetrics(t *testing.T) {
	a := testApp()

	a.server.Request(consts.MethodGet, "/", nil, nil)
	a.server.Request(consts.MethodGet, "/api/user/1", nil, nil)
	a.server.Request(consts.MethodGet, "/missing", nil, nil)

	// not-found requests never enter a chain
	assert.Equal(t, testutil.ToFloat64(a.metrics.Requests.WithLabelValues("GET", "200")), 2.0)

	rec := httptest.NewRecorder()
	a.metricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "rtrie_http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics = false

	a := newApp(cfg, logger.Noop{})
	assert.True(t, a.metrics == nil)
}

func TestAppRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1

	a := newApp(cfg, logger.Noop{})
	assert.Equal(t, a.server.Request(consts.MethodGet, "/", nil, nil).Status(), 200)
	assert.Equal(t, a.server.Request(consts.MethodGet, "/", nil, nil).Status(), consts.StatusTooManyRequests)
}

func TestPrintRoutes(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}

	printRoutes(buf, testApp().server.Routes())

	out := buf.String()
	assert.Contains(t, out, "GET    /api/user/:id")
	assert.Contains(t, out, "POST   /api/user")
	assert.Contains(t, out, "USE    /*")
}
