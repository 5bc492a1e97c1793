package config

import (
	redisPkg "ShopAssistant/pkg/redis"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)

	server, err := NewServer(
		WithFiber(NewFiber(log)),
		WithLogger(log),
		WithDB(sqlx.NewDb(db, "postgres")),
		WithRedisServer(redisPkg.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))),
		WithMiddleware(),
		WithMetrics(prometheus.NewRegistry()),
	)
	require.NoError(t, err)

	server.RegisterHandler()
	return server, mock
}

func TestNewServerRequiresDatabase(t *testing.T) {
	_, err := NewServer(WithFiber(NewFiber(logrus.New())), WithLogger(logrus.New()))
	assert.ErrorContains(t, err, "database is required")
}

func TestWithTokenTTLRejectsZero(t *testing.T) {
	_, err := NewServer(WithTokenTTL(0))
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	server, mock := newTestServer(t)
	mock.ExpectPing()

	resp, err := server.engine.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPublicRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.engine.Test(httptest.NewRequest("GET", "/api/v1/chatbot/quick-actions", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = server.engine.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestChatRequiresToken(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/v1/chatbot/message", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.engine.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.engine.Test(httptest.NewRequest("GET", "/api/v1/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestEnvDurations(t *testing.T) {
	t.Setenv("JWT_EXPIRES_HOURS", "")
	assert.Equal(t, 24*time.Hour, TokenTTLFromEnv())

	t.Setenv("JWT_EXPIRES_HOURS", "2")
	assert.Equal(t, 2*time.Hour, TokenTTLFromEnv())

	t.Setenv("CATEGORY_CACHE_TTL", "30s")
	assert.Equal(t, 30*time.Second, CategoryCacheTTLFromEnv())

	t.Setenv("CATEGORY_CACHE_TTL", "soon")
	assert.Equal(t, 10*time.Minute, CategoryCacheTTLFromEnv())
}
