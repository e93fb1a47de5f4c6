package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"

	// sweepInterval is how many Allow calls pass between evictions of
	// buckets that have refilled completely.
	sweepInterval = 1024
)

// RateLimitRule is a token bucket refilled at Rate tokens per second up to Burst.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

func (r RateLimitRule) unlimited() bool {
	return r.Rate <= 0 || r.Burst <= 0
}

// refill returns the token count after elapsed time, capped at Burst.
func (r RateLimitRule) refill(tokens float64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return tokens
	}
	return math.Min(float64(r.Burst), tokens+elapsed.Seconds()*r.Rate)
}

// wait is the time until the bucket holds one whole token again.
func (r RateLimitRule) wait(tokens float64) time.Duration {
	ms := math.Ceil((1 - tokens) / r.Rate * 1000)
	return time.Duration(ms) * time.Millisecond
}

// fullAfter is the time an empty bucket needs to refill completely.
func (r RateLimitRule) fullAfter() time.Duration {
	return time.Duration(float64(r.Burst) / r.Rate * float64(time.Second))
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter keeps one bucket per principal and group. Buckets that have
// refilled completely are dropped, since a missing bucket starts full.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
	calls   int
}

type rateBucket struct {
	tokens float64
	last   time.Time
	rule   RateLimitRule
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// GroupByRoute maps "METHOD /full/path" route keys to limiter groups.
func GroupByRoute(routes map[string]string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return routes[c.Request.Method+" "+c.FullPath()]
	}
}

// RateLimit throttles per principal (user ID, else client IP) and group.
// Routes whose group has no rule pass through untouched.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.groupOf(c)
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		d := cfg.Limiter.Allow(principalOf(c)+"|"+group, rule)
		if d.Allowed {
			if !rule.unlimited() {
				c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			}
			c.Next()
			return
		}
		retryAfterMs := int(d.RetryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa((retryAfterMs+999)/1000))
		c.Header("X-RateLimit-Remaining", "0")
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", gin.H{
			"group":        group,
			"retryAfterMs": retryAfterMs,
		})
	}
}

func (cfg RateLimitConfig) groupOf(c *gin.Context) string {
	if cfg.GroupFor != nil {
		if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
			return g
		}
	}
	return cfg.DefaultGroup
}

func principalOf(c *gin.Context) string {
	if id := strings.TrimSpace(UserIDFromContext(c)); id != "" {
		return "user:" + id
	}
	return "ip:" + strings.TrimSpace(c.ClientIP())
}

// Allow consumes a token for key under rule.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) Decision {
	if l == nil || rule.unlimited() {
		return Decision{Allowed: true}
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepInterval == 0 {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = b
	}
	b.rule = rule
	if now.After(b.last) {
		b.tokens = rule.refill(b.tokens, now.Sub(b.last))
		b.last = now
	}
	if b.tokens < 1 {
		return Decision{RetryAfter: rule.wait(b.tokens)}
	}
	b.tokens--
	return Decision{Allowed: true, Remaining: int(b.tokens)}
}

// Len reports how many buckets are tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Sweep drops buckets that would be full by now.
func (l *RateLimiter) Sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)
}

func (l *RateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) >= b.rule.fullAfter() {
			delete(l.buckets, key)
		}
	}
}
