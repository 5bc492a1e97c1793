package middleware

import (
	"ShopAssistant/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"net/http"
	"sync"
	"time"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

const defaultIdleTimeout = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for
// idleTimeout are dropped on the next sweep.
type rateLimiter struct {
	clients     map[string]*client
	rate        rate.Limit
	burstSize   int
	idleTimeout time.Duration
	lastSweep   time.Time
	now         func() time.Time
	mutex       sync.Mutex
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	idle := defaultIdleTimeout
	// a dropped bucket comes back full, so it must have had time to refill
	if reqRate > 0 {
		if refill := time.Duration(float64(burstSize) / float64(reqRate) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}

	return &rateLimiter{
		clients:     make(map[string]*client),
		rate:        reqRate,
		burstSize:   burstSize,
		idleTimeout: idle,
		now:         time.Now,
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleTimeout {
		r.sweep(now)
	}

	c, exist := r.clients[ip]
	if !exist {
		c = &client{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter
}

func (r *rateLimiter) sweep(now time.Time) {
	for ip, c := range r.clients {
		if now.Sub(c.lastSeen) >= r.idleTimeout {
			delete(r.clients, ip)
		}
	}
	r.lastSweep = now
}

func (r *rateLimiter) size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.clients)
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"ip":         clientIP,
		}).Warn("Too many requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": ErrTooManyRequests.Error(),
			"code":  "RATE_LIMITED",
		})
	}

	return ctx.Next()
}
