package middleware

import (
	redisPkg "ShopAssistant/pkg/redis"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	token               *tokenMiddleware
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

type Option func(*middleware)

// WithRateLimit sets the per-IP rate in requests per second and burst size.
func WithRateLimit(reqRate float64, burstSize int) Option {
	return func(m *middleware) {
		m.rateLimitter = newRateLimiter(rate.Limit(reqRate), burstSize)
	}
}

// New builds the shared middleware. revocations may be nil, in which case
// logged-out tokens stay valid until they expire.
func New(logger *logrus.Logger, revocations redisPkg.IRedis, opts ...Option) Middleware {
	m := &middleware{
		token:               newTokenMiddleware(revocations),
		rateLimitter:        newRateLimiter(1, 30),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
