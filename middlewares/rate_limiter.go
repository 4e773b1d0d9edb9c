package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Entries idle for over
// an hour are dropped on the next sweep so the map cannot grow unbounded.
type RateLimiter struct {
	limit     rate.Limit
	burst     int
	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows `requests` per `perSeconds` seconds for each IP.
func NewRateLimiter(requests int, perSeconds int) *RateLimiter {
	interval := time.Duration(perSeconds) * time.Second
	return &RateLimiter{
		limit:     rate.Every(interval / time.Duration(requests)),
		burst:     requests,
		clients:   make(map[string]*clientBucket),
		lastSweep: time.Now(),
	}
}

// NewStrictRateLimiter guards login/register against brute force.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Minute/10), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		bucket, ok := rl.clients[ip]
		if !ok {
			bucket = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
			rl.clients[ip] = bucket
		}
		bucket.lastSeen = time.Now()
		rl.sweepLocked()
		allowed := bucket.limiter.Allow()
		rl.mu.Unlock()

		if !allowed {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) sweepLocked() {
	now := time.Now()
	if now.Sub(rl.lastSweep) < time.Hour {
		return
	}
	for ip, bucket := range rl.clients {
		if now.Sub(bucket.lastSeen) > time.Hour {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}
