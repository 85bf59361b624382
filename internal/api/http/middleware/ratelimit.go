package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit throttles requests per client IP with a token bucket.
type RateLimit struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimit allows perMinute requests per client, bursting up to the same amount.
func NewRateLimit(perMinute int) *RateLimit {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimit{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (m *RateLimit) Handle(c *gin.Context) {
	if !m.allow(c.ClientIP()) {
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}
	c.Next()
}

func (m *RateLimit) allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, v := range m.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(m.visitors, k)
		}
	}

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}
