// middleware/ratelimit.go
package middleware

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	l := &ipLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go l.cleanup()
	return l
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup drops limiters for IPs idle longer than 10 minutes so the map
// doesn't grow without bound.
func (l *ipLimiter) cleanup() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

var (
	generalLimiter *ipLimiter
	authLimiter    *ipLimiter
	limiterOnce    sync.Once
)

func initLimiters() {
	generalRPS := getEnvFloat("RATE_LIMIT_RPS", 10)
	generalBurst := getEnvInt("RATE_LIMIT_BURST", 30)
	authRPS := getEnvFloat("AUTH_RATE_LIMIT_RPS", 0.5)
	authBurst := getEnvInt("AUTH_RATE_LIMIT_BURST", 5)

	generalLimiter = newIPLimiter(generalRPS, generalBurst)
	authLimiter = newIPLimiter(authRPS, authBurst)
}

// RateLimitMiddleware applies the general per-IP limit.
func RateLimitMiddleware() fiber.Handler {
	limiterOnce.Do(initLimiters)
	return func(c *fiber.Ctx) error {
		if !generalLimiter.get(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		}
		return c.Next()
	}
}

// AuthRateLimitMiddleware applies the stricter limit for login endpoints.
func AuthRateLimitMiddleware() fiber.Handler {
	limiterOnce.Do(initLimiters)
	return func(c *fiber.Ctx) error {
		if !authLimiter.get(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		}
		return c.Next()
	}
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
