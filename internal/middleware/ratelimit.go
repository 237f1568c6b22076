package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter mantiene un token bucket por IP
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter permite perMinute requests por minuto por IP, con ráfaga burst
func NewIPRateLimiter(perMinute float64, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		ttl:      10 * time.Minute,
	}
}

// Allow consume un token para la IP
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	// limpieza perezosa de visitantes viejos
	if len(l.visitors) > 1024 {
		for key, other := range l.visitors {
			if now.Sub(other.lastSeen) > l.ttl {
				delete(l.visitors, key)
			}
		}
	}

	return v.limiter.AllowN(now, 1)
}

// RateLimit rechaza con 429 cuando la IP supera su cuota
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
