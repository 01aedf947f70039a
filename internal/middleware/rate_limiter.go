package middleware

import (
	"strings"
	"sync"
	"time"

	"starbank/internal/errors"
	"starbank/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	idleEvictAfter = 3 * time.Minute
	evictInterval  = time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP using a token bucket for each
// client. Idle clients are evicted in the background until Stop is called.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rps     rate.Limit
	burst   int

	stopOnce sync.Once
	done     chan struct{}
}

// NewRateLimiter creates a per-IP rate limiter and starts its eviction loop.
func NewRateLimiter(rps, burst int) *RateLimiter {
	r := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
	go r.evictIdle()
	return r
}

// Stop ends the eviction loop. Safe to call more than once; the limiter keeps
// serving requests but idle clients are no longer evicted.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

// Middleware returns the echo middleware enforcing the limit.
func (r *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !r.allow(clientIP(c)) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.clients[ip]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.clients[ip] = bucket
	}
	bucket.lastSeen = time.Now()

	return bucket.limiter.Allow()
}

// clientIP prefers proxy headers over the socket address so limits apply to
// the originating client behind a load balancer.
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

func (r *RateLimiter) evictIdle() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.mu.Lock()
			for ip, bucket := range r.clients {
				if time.Since(bucket.lastSeen) > idleEvictAfter {
					delete(r.clients, ip)
				}
			}
			r.mu.Unlock()
		}
	}
}
