package middleware

import (
	"itemplane/pkg/api"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// sweepEvery is how many lookups pass between sweeps of idle limiters.
const sweepEvery = 1024

// RateLimiter throttles requests per client IP with a token bucket.
// A limit of 0 disables throttling.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	limiters sync.Map // client IP -> *cachedLimiter
	lookups  atomic.Uint64
}

// RateLimitOption configures a RateLimiter.
type RateLimitOption func(*RateLimiter)

// WithTTL sets how long an idle client's limiter is kept before it is rebuilt.
func WithTTL(ttl time.Duration) RateLimitOption {
	return func(rl *RateLimiter) {
		rl.ttl = ttl
	}
}

// NewRateLimiter creates a limiter allowing perSecond requests with the given burst.
func NewRateLimiter(perSecond float64, burst int, opts ...RateLimitOption) *RateLimiter {
	rl := &RateLimiter{
		limit: rate.Limit(perSecond),
		burst: burst,
		ttl:   5 * time.Minute,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Middleware returns the HTTP middleware enforcing the limit.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl.limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.getOrCreateLimiter(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, api.DetailThrottled, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type cachedLimiter struct {
	limiter   *rate.Limiter
	expiresAt atomic.Int64 // unix nanos, pushed forward on every use
}

func (c *cachedLimiter) expired(now time.Time) bool {
	return now.UnixNano() >= c.expiresAt.Load()
}

func (rl *RateLimiter) getOrCreateLimiter(key string) *rate.Limiter {
	now := time.Now()
	if rl.lookups.Add(1)%sweepEvery == 0 {
		rl.sweep(now)
	}

	if v, ok := rl.limiters.Load(key); ok {
		cached := v.(*cachedLimiter)
		if !cached.expired(now) {
			cached.expiresAt.Store(now.Add(rl.ttl).UnixNano())
			return cached.limiter
		}
		// expired, need to create new
	}

	cached := &cachedLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	cached.expiresAt.Store(now.Add(rl.ttl).UnixNano())
	rl.limiters.Store(key, cached)
	return cached.limiter
}

// sweep drops limiters idle for longer than the TTL.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.limiters.Range(func(key, v any) bool {
		if v.(*cachedLimiter).expired(now) {
			rl.limiters.CompareAndDelete(key, v)
		}
		return true
	})
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
