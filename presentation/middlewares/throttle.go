package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AuthThrottle is an in-process token bucket per client IP for the
// credential endpoints. It keeps working when Redis is down.
type AuthThrottle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewAuthThrottle(perMinute, burst int) *AuthThrottle {
	return &AuthThrottle{
		limiters: make(map[string]*throttleEntry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

func (t *AuthThrottle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	entry, ok := t.limiters[key]
	if !ok {
		entry = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastSeen = now

	for k, e := range t.limiters {
		if now.Sub(e.lastSeen) > t.idleTTL {
			delete(t.limiters, k)
		}
	}

	return entry.limiter.AllowN(now, 1)
}

func (t *AuthThrottle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.Allow(c.ClientIP()) {
			abortTooManyRequests(c, "Too many authentication attempts. Try again shortly.", time.Minute)
			return
		}
		c.Next()
	}
}
