package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"garage-api/internal/metrics"
)

// LoginLimiterConfig bounds login attempts per client IP.
type LoginLimiterConfig struct {
	PerMinute       int
	Burst           int
	CleanupInterval time.Duration
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles login attempts with one token bucket per client IP.
// Idle buckets are dropped by a background loop until Stop is called.
type LoginLimiter struct {
	perMinute int
	burst     int
	cleanup   time.Duration

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewLoginLimiter(cfg LoginLimiterConfig) *LoginLimiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.PerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	l := &LoginLimiter{
		perMinute: cfg.PerMinute,
		burst:     cfg.Burst,
		cleanup:   cfg.CleanupInterval,
		clients:   make(map[string]*clientLimiter),
		stopCh:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Allow reports whether key may attempt another login now.
func (l *LoginLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.burst)}
		l.clients[key] = cl
	}
	cl.lastAccess = now
	l.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

// Middleware rejects throttled clients with 429 and reports them to record.
func (l *LoginLimiter) Middleware(record func(outcome string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if record != nil {
			record(metrics.LoginRateLimited)
		}
		c.Header("Retry-After", strconv.Itoa(l.retryAfterSeconds()))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
	}
}

func (l *LoginLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *LoginLimiter) retryAfterSeconds() int {
	// seconds until one token refills
	return (60 + l.perMinute - 1) / l.perMinute
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			l.evictIdle(now)
		case <-l.stopCh:
			return
		}
	}
}

// evictIdle drops buckets untouched for two cleanup intervals.
func (l *LoginLimiter) evictIdle(now time.Time) {
	ttl := 2 * l.cleanup

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, cl := range l.clients {
		if now.Sub(cl.lastAccess) > ttl {
			delete(l.clients, key)
		}
	}
}
