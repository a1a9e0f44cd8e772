package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rachef/sitecms/internal/adapters/notify"
	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/config"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/infrastructure/metrics"
)

const testSecret = "test-secret"

type stubGateway struct {
	pingErr error
}

func (g *stubGateway) Load(context.Context, entities.File) (document.Document, error) {
	return document.New(), nil
}
func (g *stubGateway) Save(context.Context, entities.File, document.Document) error   { return nil }
func (g *stubGateway) Import(context.Context, entities.File, document.Document) error { return nil }
func (g *stubGateway) Upload(context.Context, string, io.Reader) (string, error)      { return "", nil }
func (g *stubGateway) Ping(context.Context) error                                     { return g.pingErr }

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "sitecms", Version: "test", Environment: "development"},
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8080, BodyLimit: "1M"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*", RateLimitRequests: 1000, RateLimitWindow: time.Minute},
		Auth:     config.AuthConfig{JWTSecret: testSecret, Issuer: "rachef"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T, gateway *stubGateway) *Server {
	t.Helper()
	registry := prometheus.NewRegistry()
	feed := notify.NewFeed(10)
	store := services.NewStoreService(feed, logger.NewNop(), services.WithMetrics(metrics.NewStoreMetrics(registry)))
	persistence := services.NewPersistenceService(store, gateway, nil, services.UploadPolicy{}, logger.NewNop())

	srv, err := New(testConfig(), Deps{Store: store, Persistence: persistence, Feed: feed, Registry: registry}, logger.NewNop())
	require.NoError(t, err)
	return srv
}

func token(t *testing.T, secret, issuer string, expires time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "editor@rachef.fr",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func get(srv *Server, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(testConfig(), Deps{}, logger.NewNop())
	assert.Error(t, err)
}

func TestHealthAndReadiness(t *testing.T) {
	gateway := &stubGateway{}
	srv := newTestServer(t, gateway)

	rec := get(srv, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = get(srv, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	gateway.pingErr = errors.New("connection refused")
	rec = get(srv, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend_not_ready")

	rec = get(srv, "/health/detailed", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, &stubGateway{})
	valid := token(t, testSecret, "rachef", time.Now().Add(time.Hour))

	cases := []struct {
		name string
		auth string
		code int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + token(t, "other", "rachef", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + token(t, testSecret, "someone", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + token(t, testSecret, "rachef", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(srv, "/api/v1/store/status", tc.auth)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	feed := notify.NewFeed(10)
	store := services.NewStoreService(feed, logger.NewNop())
	persistence := services.NewPersistenceService(store, &stubGateway{}, nil, services.UploadPolicy{}, logger.NewNop())

	srv, err := New(cfg, Deps{Store: store, Persistence: persistence, Feed: feed}, logger.NewNop())
	require.NoError(t, err)

	rec := get(srv, "/api/v1/store/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGateway{})
	get(srv, "/health", "")

	rec := get(srv, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, body, "sitecms_store_dirty")
}

func TestSwaggerDocument(t *testing.T) {
	srv := newTestServer(t, &stubGateway{})

	rec := get(srv, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sitecms API"))
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, &stubGateway{})

	rec := get(srv, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
}

func TestRequestLogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	appLogger := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	feed := notify.NewFeed(10)
	store := services.NewStoreService(feed, logger.NewNop())
	persistence := services.NewPersistenceService(store, &stubGateway{}, nil, services.UploadPolicy{}, logger.NewNop())
	srv, err := New(testConfig(), Deps{Store: store, Persistence: persistence, Feed: feed}, appLogger)
	require.NoError(t, err)

	for _, target := range []string{"/health", "/nope"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set(echo.HeaderXRequestID, "req-"+strings.TrimPrefix(target, "/"))
		srv.ServeHTTP(httptest.NewRecorder(), req)
	}

	ok := logs.FilterMessage("HTTP request").All()
	require.Len(t, ok, 1)
	assert.Equal(t, "req-health", ok[0].ContextMap()["request_id"])
	assert.Equal(t, "server", ok[0].ContextMap()["component"])

	failed := logs.FilterMessage("HTTP request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "req-nope", failed[0].ContextMap()["request_id"])
	assert.Contains(t, failed[0].ContextMap()["error"], "Not Found")
}
