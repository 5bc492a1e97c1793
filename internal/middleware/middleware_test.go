package middleware

import (
	jwtPkg "ShopAssistant/pkg/jwt"
	redisPkg "ShopAssistant/pkg/redis"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, opts ...Option) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()
	t.Setenv(AccessTokenSecret, "test-secret")

	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	m := New(log, redisPkg.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), opts...)

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/private", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(c)
		if err != nil {
			return err
		}
		return c.SendString(user.ID)
	})
	app.Get("/limited", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	return app, mr
}

func signToken(t *testing.T) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "u1", "username": "alice"}, time.Hour)
	require.NoError(t, err)
	return token
}

func get(t *testing.T, app *fiber.App, target, token string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestTokenMiddleware(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/private", signToken(t))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u1", body)

	status, _ = get(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "/private", "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestTokenMiddlewareRejectsRevoked(t *testing.T) {
	app, mr := newTestApp(t)
	token := signToken(t)

	parsed, err := jwtPkg.ParseToken(token, "test-secret")
	require.NoError(t, err)
	user, err := jwtPkg.LoginDataFromClaims(parsed.Claims.(jwt.MapClaims))
	require.NoError(t, err)

	require.NoError(t, mr.Set(jwtPkg.RevokedKey(user.TokenID), user.ID))

	status, _ := get(t, app, "/private", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestTokenMiddlewareRedisDown(t *testing.T) {
	app, mr := newTestApp(t)
	token := signToken(t)
	mr.Close()

	status, _ := get(t, app, "/private", token)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestRateLimiter(t *testing.T) {
	app, _ := newTestApp(t, WithRateLimit(0.001, 2))

	for i := 0; i < 2; i++ {
		status, body := get(t, app, "/limited", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.NotEqual(t, "unknown", body)
	}

	status, _ := get(t, app, "/limited", "")
	assert.Equal(t, fiber.StatusTooManyRequests, status)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := newRateLimiter(1, 30)
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	first := rl.GetLimiterFrom("10.0.0.1")
	assert.Same(t, first, rl.GetLimiterFrom("10.0.0.1"))

	now = now.Add(5 * time.Minute)
	rl.GetLimiterFrom("10.0.0.2")
	assert.Equal(t, 2, rl.size())

	now = now.Add(6 * time.Minute)
	rl.GetLimiterFrom("10.0.0.3")
	assert.Equal(t, 2, rl.size())
	assert.NotSame(t, first, rl.GetLimiterFrom("10.0.0.1"))
}

func TestRateLimiterIdleTimeoutCoversRefill(t *testing.T) {
	assert.Equal(t, defaultIdleTimeout, newRateLimiter(1, 30).idleTimeout)
	assert.Equal(t, 2000*time.Second, newRateLimiter(0.5, 1000).idleTimeout)
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody("/api/v1/auth/login", `{"username":"alice","password":"secret"}`)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "alice")
}

func TestRequestIDMiddleware(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"client id kept", "req-123", true},
		{"missing", "", false},
		{"unsafe characters", "abc\"; drop", false},
		{"too long", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/limited", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDKey, tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			got := resp.Header.Get(RequestIDKey)
			if tt.keep {
				assert.Equal(t, tt.header, got)
			} else {
				assert.Len(t, got, 26)
			}
		})
	}
}
